package dto

import (
	"time"

	"github.com/taskpilot/taskpilot-api/internal/models"
)

// SubtaskDTO represents a subtask in API responses
type SubtaskDTO struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

// NoteDTO represents a task note in API responses
type NoteDTO struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	IsAI      bool      `json:"is_ai"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID                   uint64              `json:"id"`
	OwnerID              uint64              `json:"owner_id"`
	Title                string              `json:"title"`
	Description          string              `json:"description"`
	Status               models.TaskStatus   `json:"status"`
	Priority             models.TaskPriority `json:"priority"`
	Category             models.TaskCategory `json:"category"`
	DueDate              *time.Time          `json:"due_date"`
	EstimatedDuration    *int                `json:"estimated_duration,omitempty"`
	Tags                 []string            `json:"tags"`
	Subtasks             []SubtaskDTO        `json:"subtasks"`
	Notes                []NoteDTO           `json:"notes"`
	AIGenerated          bool                `json:"ai_generated"`
	CompletionPercentage int                 `json:"completion_percentage"`
	CompletedAt          *time.Time          `json:"completed_at"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                   task.ID,
		OwnerID:              task.OwnerID,
		Title:                task.Title,
		Description:          task.Description,
		Status:               task.Status,
		Priority:             task.Priority,
		Category:             task.Category,
		DueDate:              task.DueDate,
		EstimatedDuration:    task.EstimatedDuration,
		Tags:                 task.Tags,
		AIGenerated:          task.AIGenerated,
		CompletionPercentage: task.CompletionPercentage(),
		CompletedAt:          task.CompletedAt,
		CreatedAt:            task.CreatedAt,
		UpdatedAt:            task.UpdatedAt,
	}

	if dto.Tags == nil {
		dto.Tags = []string{}
	}

	dto.Subtasks = make([]SubtaskDTO, len(task.Subtasks))
	for i, st := range task.Subtasks {
		dto.Subtasks[i] = SubtaskDTO{
			ID:          st.ID,
			Title:       st.Title,
			Completed:   st.Completed,
			CompletedAt: st.CompletedAt,
		}
	}

	dto.Notes = make([]NoteDTO, len(task.Notes))
	for i, n := range task.Notes {
		dto.Notes[i] = NoteDTO{
			ID:        n.ID,
			Content:   n.Content,
			IsAI:      n.IsAI,
			CreatedAt: n.CreatedAt,
		}
	}

	return dto
}
