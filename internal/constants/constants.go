package constants

import "time"

// Context keys
const (
	ContextKeyUserID = "user_id"
)

// Validation limits
const (
	MinPasswordLength    = 6
	MinNameLength        = 2
	MaxNameLength        = 50
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxTagLength         = 30
	MaxNoteLength        = 500
	MaxChatMessageLength = 2000
	MinDurationMinutes   = 1
	MaxDurationMinutes   = 1440
	MaxFeedbackRating    = 5
	MinFeedbackRating    = 1
	MaxCommentLength     = 500
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Token settings
const (
	TokenLifetime = 7 * 24 * time.Hour
	TokenIssuer   = "taskpilot-api"
)

// Assistant settings
const (
	InteractionRetention    = 7 * 24 * time.Hour
	MaxSuggestions          = 3
	PendingBacklogThreshold = 5
	CompletionRateTarget    = 70
)
