package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskpilot/taskpilot-api/internal/constants"
	"github.com/taskpilot/taskpilot-api/internal/dto"
	apierrors "github.com/taskpilot/taskpilot-api/internal/errors"
	"github.com/taskpilot/taskpilot-api/internal/middleware"
	"github.com/taskpilot/taskpilot-api/internal/services"
)

// AIHandler coordinates assistant-related HTTP handlers.
type AIHandler struct {
	adviceService *services.AdviceService
	taskService   *services.TaskService
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(adviceService *services.AdviceService, taskService *services.TaskService) *AIHandler {
	return &AIHandler{
		adviceService: adviceService,
		taskService:   taskService,
	}
}

// Chat returns a canned assistant reply and logs the exchange.
func (h *AIHandler) Chat(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, apierrors.ErrCodeNoToken, "Not authenticated")
		return
	}

	type ChatRequest struct {
		Message   string `json:"message" binding:"required"`
		SessionID string `json:"session_id"`
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Message is required")
		return
	}
	if len(req.Message) > constants.MaxChatMessageLength {
		apierrors.BadRequest(c, fmt.Sprintf("Message cannot exceed %d characters", constants.MaxChatMessageLength))
		return
	}

	interaction, err := h.adviceService.Chat(userID, req.SessionID, req.Message)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate response")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response":       interaction.AIResponse,
		"interaction_id": interaction.ID,
		"session_id":     interaction.SessionID,
	})
}

// Suggestions returns rule-based task suggestions for the caller.
func (h *AIHandler) Suggestions(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, apierrors.ErrCodeNoToken, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	suggestions, err := h.adviceService.Suggestions(userID, tasks)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate suggestions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// Insights returns rule-based productivity insights for the caller.
func (h *AIHandler) Insights(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, apierrors.ErrCodeNoToken, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	insights, err := h.adviceService.Insights(userID, tasks)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate insights")
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

// Feedback records a rating on one of the caller's interactions.
func (h *AIHandler) Feedback(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, apierrors.ErrCodeNoToken, "Not authenticated")
		return
	}

	type FeedbackRequest struct {
		InteractionID uint64 `json:"interaction_id" binding:"required"`
		Rating        *int   `json:"rating"`
		Helpful       *bool  `json:"helpful"`
		Comment       string `json:"comment"`
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Interaction ID is required")
		return
	}

	interaction, err := h.adviceService.RecordFeedback(userID, services.FeedbackInput{
		InteractionID: req.InteractionID,
		Rating:        req.Rating,
		Helpful:       req.Helpful,
		Comment:       req.Comment,
	})
	if err != nil {
		respondAIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Feedback recorded",
		"interaction": dto.ToInteractionDTO(*interaction),
	})
}

// History lists the caller's recent assistant interactions.
func (h *AIHandler) History(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, apierrors.ErrCodeNoToken, "Not authenticated")
		return
	}

	interactions, err := h.adviceService.History(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch history")
		return
	}

	c.JSON(http.StatusOK, dto.ToInteractionListResponse(interactions))
}

func respondAIError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.BadRequestWithDetails(c, "Validation failed", verr.Fields)
	case errors.Is(err, services.ErrInteractionNotFound):
		apierrors.NotFound(c, "Interaction not found")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
