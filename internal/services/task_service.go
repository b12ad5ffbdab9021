package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/taskpilot/taskpilot-api/internal/constants"
	"github.com/taskpilot/taskpilot-api/internal/models"
	"github.com/taskpilot/taskpilot-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrInteractionNotFound = errors.New("interaction not found")
)

// TaskService handles task business logic. Every operation takes the caller's
// user ID and scopes the underlying queries to it.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title             string
	Description       string
	Status            models.TaskStatus
	Priority          models.TaskPriority
	Category          models.TaskCategory
	DueDate           *time.Time
	EstimatedDuration *int
	Tags              []string
}

// UpdateTaskInput represents input for updating a task. Nil fields keep their
// prior values.
type UpdateTaskInput struct {
	Title             *string
	Description       *string
	Status            *models.TaskStatus
	Priority          *models.TaskPriority
	Category          *models.TaskCategory
	DueDate           *time.Time
	ClearDueDate      bool
	EstimatedDuration *int
	Tags              *[]string
}

// TaskStats summarizes a user's tasks in a single pass.
type TaskStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completionRate"`
}

// ListTasks returns all tasks owned by the caller, newest first
func (s *TaskService) ListTasks(ownerID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task owned by the caller
func (s *TaskService) GetTask(taskID, ownerID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDForOwner(taskID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask validates input, applies defaults and persists a new task
func (s *TaskService) CreateTask(ownerID uint64, input CreateTaskInput) (*models.Task, error) {
	input.Title = strings.TrimSpace(input.Title)

	if verr := validateTaskInput(&input); verr != nil {
		return nil, verr
	}

	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if input.Category == "" {
		input.Category = models.TaskCategoryPersonal
	}

	task := &models.Task{
		OwnerID:           ownerID,
		Title:             input.Title,
		Description:       input.Description,
		Status:            input.Status,
		Priority:          input.Priority,
		Category:          input.Category,
		DueDate:           input.DueDate,
		EstimatedDuration: input.EstimatedDuration,
		Tags:              input.Tags,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.GetTask(task.ID, ownerID)
}

// UpdateTask applies a partial update to a task owned by the caller. Moving a
// task into the completed status behaves like Complete; moving it out clears
// the completion timestamp.
func (s *TaskService) UpdateTask(taskID, ownerID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(taskID, ownerID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string)

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			fields["title"] = "Task title is required"
		} else if len(title) > constants.MaxTitleLength {
			fields["title"] = fmt.Sprintf("Title cannot exceed %d characters", constants.MaxTitleLength)
		} else {
			task.Title = title
		}
	}
	if input.Description != nil {
		if len(*input.Description) > constants.MaxDescriptionLength {
			fields["description"] = fmt.Sprintf("Description cannot exceed %d characters", constants.MaxDescriptionLength)
		} else {
			task.Description = *input.Description
		}
	}
	if input.Priority != nil {
		if !models.ValidTaskPriority(*input.Priority) {
			fields["priority"] = "Invalid priority value"
		} else {
			task.Priority = *input.Priority
		}
	}
	if input.Category != nil {
		if !models.ValidTaskCategory(*input.Category) {
			fields["category"] = "Invalid category value"
		} else {
			task.Category = *input.Category
		}
	}
	if input.EstimatedDuration != nil {
		if *input.EstimatedDuration < constants.MinDurationMinutes || *input.EstimatedDuration > constants.MaxDurationMinutes {
			fields["estimated_duration"] = fmt.Sprintf("Estimated duration must be between %d and %d minutes",
				constants.MinDurationMinutes, constants.MaxDurationMinutes)
		} else {
			task.EstimatedDuration = input.EstimatedDuration
		}
	}
	if input.Tags != nil {
		if msg := validateTags(*input.Tags); msg != "" {
			fields["tags"] = msg
		} else {
			task.Tags = *input.Tags
		}
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			fields["status"] = "Invalid status value"
		} else {
			applyStatusChange(task, *input.Status, time.Now())
		}
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.GetTask(task.ID, ownerID)
}

// DeleteTask removes a task owned by the caller
func (s *TaskService) DeleteTask(taskID, ownerID uint64) error {
	if err := s.taskRepo.Delete(taskID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// CompleteTask marks a task completed and cascades the same timestamp to any
// incomplete subtasks. Completing an already-completed task is a no-op and
// does not advance the timestamp.
func (s *TaskService) CompleteTask(taskID, ownerID uint64) (*models.Task, error) {
	task, err := s.GetTask(taskID, ownerID)
	if err != nil {
		return nil, err
	}

	if task.IsCompleted() {
		return task, nil
	}

	applyStatusChange(task, models.TaskStatusCompleted, time.Now())

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return s.GetTask(task.ID, ownerID)
}

// AddSubtask appends a subtask to a task owned by the caller
func (s *TaskService) AddSubtask(taskID, ownerID uint64, title string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &ValidationError{Fields: map[string]string{"title": "Subtask title is required"}}
	}
	if len(title) > constants.MaxTitleLength {
		return nil, &ValidationError{Fields: map[string]string{
			"title": fmt.Sprintf("Subtask title cannot exceed %d characters", constants.MaxTitleLength),
		}}
	}

	task, err := s.GetTask(taskID, ownerID)
	if err != nil {
		return nil, err
	}

	subtask := &models.Subtask{
		TaskID: task.ID,
		Title:  title,
	}
	if err := s.taskRepo.AddSubtask(subtask); err != nil {
		return nil, fmt.Errorf("failed to add subtask: %w", err)
	}

	return s.GetTask(task.ID, ownerID)
}

// AddNote appends a note to a task owned by the caller
func (s *TaskService) AddNote(taskID, ownerID uint64, content string, isAI bool) (*models.Task, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &ValidationError{Fields: map[string]string{"content": "Note content is required"}}
	}
	if len(content) > constants.MaxNoteLength {
		return nil, &ValidationError{Fields: map[string]string{
			"content": fmt.Sprintf("Note cannot exceed %d characters", constants.MaxNoteLength),
		}}
	}

	task, err := s.GetTask(taskID, ownerID)
	if err != nil {
		return nil, err
	}

	note := &models.Note{
		TaskID:  task.ID,
		Content: content,
		IsAI:    isAI,
	}
	if err := s.taskRepo.AddNote(note); err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}

	return s.GetTask(task.ID, ownerID)
}

// Stats computes the caller's task statistics in one pass
func (s *TaskService) Stats(ownerID uint64) (*TaskStats, error) {
	tasks, err := s.taskRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	now := time.Now()
	stats := &TaskStats{Total: len(tasks)}
	for i := range tasks {
		t := &tasks[i]
		if t.IsCompleted() {
			stats.Completed++
		} else {
			stats.Pending++
		}
		if t.IsOverdue(now) {
			stats.Overdue++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}

	return stats, nil
}

// applyStatusChange moves a task to the given status and keeps the completion
// timestamp consistent: set exactly on the transition into completed, shared
// with any incomplete subtasks, cleared on the way out.
func applyStatusChange(task *models.Task, status models.TaskStatus, now time.Time) {
	wasCompleted := task.IsCompleted()
	task.Status = status

	if status == models.TaskStatusCompleted {
		if wasCompleted {
			return
		}
		task.CompletedAt = &now
		for i := range task.Subtasks {
			if !task.Subtasks[i].Completed {
				task.Subtasks[i].Completed = true
				task.Subtasks[i].CompletedAt = &now
			}
		}
		return
	}

	if wasCompleted {
		task.CompletedAt = nil
	}
}

func validateTaskInput(input *CreateTaskInput) *ValidationError {
	fields := make(map[string]string)

	if input.Title == "" {
		fields["title"] = "Task title is required"
	} else if len(input.Title) > constants.MaxTitleLength {
		fields["title"] = fmt.Sprintf("Title cannot exceed %d characters", constants.MaxTitleLength)
	}
	if len(input.Description) > constants.MaxDescriptionLength {
		fields["description"] = fmt.Sprintf("Description cannot exceed %d characters", constants.MaxDescriptionLength)
	}
	if input.Status != "" && !models.ValidTaskStatus(input.Status) {
		fields["status"] = "Invalid status value"
	}
	if input.Priority != "" && !models.ValidTaskPriority(input.Priority) {
		fields["priority"] = "Invalid priority value"
	}
	if input.Category != "" && !models.ValidTaskCategory(input.Category) {
		fields["category"] = "Invalid category value"
	}
	if input.DueDate != nil && !input.DueDate.After(time.Now()) {
		fields["due_date"] = "Due date must be in the future"
	}
	if input.EstimatedDuration != nil &&
		(*input.EstimatedDuration < constants.MinDurationMinutes || *input.EstimatedDuration > constants.MaxDurationMinutes) {
		fields["estimated_duration"] = fmt.Sprintf("Estimated duration must be between %d and %d minutes",
			constants.MinDurationMinutes, constants.MaxDurationMinutes)
	}
	if msg := validateTags(input.Tags); msg != "" {
		fields["tags"] = msg
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateTags(tags []string) string {
	for _, tag := range tags {
		if len(tag) > constants.MaxTagLength {
			return fmt.Sprintf("Tag cannot exceed %d characters", constants.MaxTagLength)
		}
	}
	return ""
}
