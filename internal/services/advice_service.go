package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskpilot/taskpilot-api/internal/constants"
	"github.com/taskpilot/taskpilot-api/internal/models"
	"github.com/taskpilot/taskpilot-api/internal/repository"
	"gorm.io/gorm"
)

// RandomSource supplies the index draw for canned chat replies. Injected so
// tests can pin a seed.
type RandomSource interface {
	Intn(n int) int
}

// Suggestion is a rule-derived task recommendation.
type Suggestion struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// Insight is a rule-derived productivity observation.
type Insight struct {
	Type           string `json:"type"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// FeedbackInput carries user feedback on a logged interaction.
type FeedbackInput struct {
	InteractionID uint64
	Rating        *int
	Helpful       *bool
	Comment       string
}

var chatResponses = []string{
	"That's a great question! Let me help you with that. Based on your current tasks, I'd recommend focusing on high-priority items first.",
	"I understand you're looking for productivity advice. Here are some strategies that might work well for your situation...",
	"Based on what you've shared, I can suggest a few approaches to improve your workflow and task management.",
	"That's an interesting challenge! Let me break down some solutions that could help you be more productive.",
	"I'd be happy to help you optimize your productivity. Here are some insights and recommendations...",
	"Great question! Here are some productivity tips that might help:\n\n• Use the 2-minute rule: if a task takes less than 2 minutes, do it now\n• Time-block your calendar for focused work\n• Take regular breaks using the Pomodoro Technique",
	"Based on your current workload, I'd suggest:\n\n• Prioritizing tasks by urgency and importance\n• Breaking large tasks into smaller, manageable chunks\n• Setting specific deadlines for each task\n• Reviewing your progress daily",
}

// AdviceService produces canned chat replies and rule-based suggestions and
// insights. No model is consulted; the rules are fixed heuristics over the
// caller's task list.
type AdviceService struct {
	interactionRepo repository.InteractionRepository
	random          RandomSource
}

// NewAdviceService creates a new AdviceService.
func NewAdviceService(interactionRepo repository.InteractionRepository, random RandomSource) *AdviceService {
	return &AdviceService{
		interactionRepo: interactionRepo,
		random:          random,
	}
}

// Chat picks a reply from the fixed pool and logs the exchange. The message
// content is stored but never interpreted.
func (s *AdviceService) Chat(userID uint64, sessionID, message string) (*models.AIInteraction, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	response := chatResponses[s.random.Intn(len(chatResponses))]
	interaction := s.newInteraction(userID, sessionID, models.InteractionTypeChat, message, response)

	if err := s.interactionRepo.Create(interaction); err != nil {
		return nil, fmt.Errorf("failed to store interaction: %w", err)
	}

	return interaction, nil
}

// Suggestions walks the fixed rule ladder over the caller's tasks and logs the
// outcome. At most MaxSuggestions entries are produced, in ladder order.
func (s *AdviceService) Suggestions(userID uint64, tasks []models.Task) ([]Suggestion, error) {
	suggestions := buildSuggestions(tasks, time.Now())

	interaction := s.newInteraction(userID, uuid.NewString(), models.InteractionTypeSuggestion,
		"", fmt.Sprintf("Generated %d task suggestion(s)", len(suggestions)))
	if err := s.interactionRepo.Create(interaction); err != nil {
		return nil, fmt.Errorf("failed to store interaction: %w", err)
	}

	return suggestions, nil
}

// Insights derives productivity observations from the caller's tasks and logs
// the outcome.
func (s *AdviceService) Insights(userID uint64, tasks []models.Task) ([]Insight, error) {
	insights := buildInsights(tasks)

	interaction := s.newInteraction(userID, uuid.NewString(), models.InteractionTypeInsight,
		"", fmt.Sprintf("Generated %d productivity insight(s)", len(insights)))
	if err := s.interactionRepo.Create(interaction); err != nil {
		return nil, fmt.Errorf("failed to store interaction: %w", err)
	}

	return insights, nil
}

// History lists the caller's unexpired interactions, newest first.
func (s *AdviceService) History(userID uint64) ([]models.AIInteraction, error) {
	interactions, err := s.interactionRepo.ListActiveByUser(userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	return interactions, nil
}

// RecordFeedback attaches rating/helpful/comment to one of the caller's
// interactions.
func (s *AdviceService) RecordFeedback(userID uint64, input FeedbackInput) (*models.AIInteraction, error) {
	if input.Rating != nil &&
		(*input.Rating < constants.MinFeedbackRating || *input.Rating > constants.MaxFeedbackRating) {
		return nil, &ValidationError{Fields: map[string]string{
			"rating": fmt.Sprintf("Rating must be between %d and %d",
				constants.MinFeedbackRating, constants.MaxFeedbackRating),
		}}
	}
	if len(input.Comment) > constants.MaxCommentLength {
		return nil, &ValidationError{Fields: map[string]string{
			"comment": fmt.Sprintf("Comment cannot exceed %d characters", constants.MaxCommentLength),
		}}
	}

	interaction, err := s.interactionRepo.FindByIDForUser(input.InteractionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInteractionNotFound
		}
		return nil, fmt.Errorf("failed to find interaction: %w", err)
	}

	if input.Rating != nil {
		interaction.Rating = input.Rating
	}
	if input.Helpful != nil {
		interaction.Helpful = input.Helpful
	}
	if input.Comment != "" {
		interaction.Comment = input.Comment
	}

	if err := s.interactionRepo.Update(interaction); err != nil {
		return nil, fmt.Errorf("failed to update interaction: %w", err)
	}

	return interaction, nil
}

func (s *AdviceService) newInteraction(userID uint64, sessionID string, kind models.InteractionType, message, response string) *models.AIInteraction {
	now := time.Now()
	return &models.AIInteraction{
		UserID:      userID,
		SessionID:   sessionID,
		Type:        kind,
		UserMessage: message,
		AIResponse:  response,
		CreatedAt:   now,
		ExpiresAt:   now.Add(constants.InteractionRetention),
	}
}

func buildSuggestions(tasks []models.Task, now time.Time) []Suggestion {
	if len(tasks) == 0 {
		return []Suggestion{{
			Type:        "getting_started",
			Title:       "Create your first task",
			Description: "Start by adding a task to get organized and boost your productivity.",
			Priority:    "high",
		}}
	}

	var pending, overdue int
	for i := range tasks {
		if !tasks[i].IsCompleted() {
			pending++
		}
		if tasks[i].IsOverdue(now) {
			overdue++
		}
	}

	var suggestions []Suggestion
	if overdue > 0 {
		suggestions = append(suggestions, Suggestion{
			Type:        "overdue",
			Title:       "Address overdue tasks",
			Description: fmt.Sprintf("You have %d overdue task(s). Consider updating deadlines or completing them soon.", overdue),
			Priority:    "high",
		})
	}
	if pending > constants.PendingBacklogThreshold {
		suggestions = append(suggestions, Suggestion{
			Type:        "too_many_tasks",
			Title:       "Consider task prioritization",
			Description: "You have many pending tasks. Try using the Eisenhower Matrix to prioritize effectively.",
			Priority:    "medium",
		})
	}
	suggestions = append(suggestions, Suggestion{
		Type:        "break_large_tasks",
		Title:       "Break down large tasks",
		Description: "If you have any large, complex tasks, consider breaking them into smaller, actionable steps.",
		Priority:    "low",
	})

	if len(suggestions) > constants.MaxSuggestions {
		suggestions = suggestions[:constants.MaxSuggestions]
	}
	return suggestions
}

func buildInsights(tasks []models.Task) []Insight {
	if len(tasks) == 0 {
		return []Insight{{
			Type:           "no_data",
			Title:          "No tasks yet",
			Description:    "Start adding tasks to get personalized productivity insights.",
			Recommendation: "Create your first task to begin tracking your productivity patterns.",
		}}
	}

	var completed int
	var highPriority, completedHighPriority int
	categories := make(map[models.TaskCategory]struct{})
	for i := range tasks {
		t := &tasks[i]
		if t.IsCompleted() {
			completed++
		}
		if t.Priority == models.TaskPriorityHigh || t.Priority == models.TaskPriorityUrgent {
			highPriority++
			if t.IsCompleted() {
				completedHighPriority++
			}
		}
		categories[t.Category] = struct{}{}
	}

	completionRate := int(math.Round(float64(completed) / float64(len(tasks)) * 100))

	recommendation := "Consider focusing on fewer tasks or breaking them into smaller steps."
	if completionRate > constants.CompletionRateTarget {
		recommendation = "Great job! You're maintaining a high completion rate."
	}

	insights := []Insight{{
		Type:           "completion_rate",
		Title:          "Task Completion Rate",
		Description:    fmt.Sprintf("You've completed %d%% of your tasks.", completionRate),
		Recommendation: recommendation,
	}}

	if highPriority > 0 {
		insights = append(insights, Insight{
			Type:           "priority_focus",
			Title:          "High Priority Focus",
			Description:    fmt.Sprintf("You have %d high-priority tasks, with %d completed.", highPriority, completedHighPriority),
			Recommendation: "Focus on completing high-priority tasks first to maximize impact.",
		})
	}

	if len(categories) > 1 {
		names := make([]string, 0, len(categories))
		for c := range categories {
			names = append(names, string(c))
		}
		sort.Strings(names)
		insights = append(insights, Insight{
			Type:           "category_balance",
			Title:          "Task Categories",
			Description:    fmt.Sprintf("Your tasks span %d different categories: %s.", len(names), strings.Join(names, ", ")),
			Recommendation: "Consider batching similar tasks together for better focus and efficiency.",
		})
	}

	return insights
}
