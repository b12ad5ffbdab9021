package dto

import (
	"time"

	"github.com/taskpilot/taskpilot-api/internal/models"
)

// InteractionDTO represents an assistant interaction in API responses
type InteractionDTO struct {
	ID          uint64                 `json:"id"`
	SessionID   string                 `json:"session_id"`
	Type        models.InteractionType `json:"type"`
	UserMessage string                 `json:"user_message,omitempty"`
	AIResponse  string                 `json:"ai_response"`
	Rating      *int                   `json:"rating,omitempty"`
	Helpful     *bool                  `json:"helpful,omitempty"`
	Comment     string                 `json:"comment,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	ExpiresAt   time.Time              `json:"expires_at"`
}

// InteractionListResponse represents an interaction history response
type InteractionListResponse struct {
	Interactions []InteractionDTO `json:"interactions"`
	Total        int              `json:"total"`
}

// ToInteractionDTO converts an AIInteraction model to InteractionDTO
func ToInteractionDTO(interaction models.AIInteraction) InteractionDTO {
	return InteractionDTO{
		ID:          interaction.ID,
		SessionID:   interaction.SessionID,
		Type:        interaction.Type,
		UserMessage: interaction.UserMessage,
		AIResponse:  interaction.AIResponse,
		Rating:      interaction.Rating,
		Helpful:     interaction.Helpful,
		Comment:     interaction.Comment,
		CreatedAt:   interaction.CreatedAt,
		ExpiresAt:   interaction.ExpiresAt,
	}
}

// ToInteractionListResponse converts interactions to a history response
func ToInteractionListResponse(interactions []models.AIInteraction) InteractionListResponse {
	items := make([]InteractionDTO, len(interactions))
	for i, interaction := range interactions {
		items[i] = ToInteractionDTO(interaction)
	}
	return InteractionListResponse{
		Interactions: items,
		Total:        len(items),
	}
}
