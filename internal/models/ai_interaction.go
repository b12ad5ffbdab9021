package models

import (
	"time"
)

type InteractionType string

const (
	InteractionTypeChat       InteractionType = "chat"
	InteractionTypeSuggestion InteractionType = "task_suggestion"
	InteractionTypeInsight    InteractionType = "productivity_insight"
)

// AIInteraction is a log entry for assistant activity. Entries expire after a
// bounded retention window and are swept by the retention job.
type AIInteraction struct {
	ID          uint64          `gorm:"primarykey" json:"id"`
	UserID      uint64          `gorm:"not null;index" json:"user_id"`
	SessionID   string          `gorm:"type:varchar(100);not null;index" json:"session_id"`
	Type        InteractionType `gorm:"type:varchar(30);not null" json:"type"`
	UserMessage string          `gorm:"type:varchar(2000)" json:"user_message"`
	AIResponse  string          `gorm:"type:text;not null" json:"ai_response"`
	Rating      *int            `json:"rating"`
	Helpful     *bool           `json:"helpful"`
	Comment     string          `gorm:"type:varchar(500)" json:"comment"`
	CreatedAt   time.Time       `json:"created_at"`
	ExpiresAt   time.Time       `gorm:"not null;index" json:"expires_at"`
}
