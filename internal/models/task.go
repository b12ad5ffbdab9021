package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// ValidTaskStatus reports whether s is a known status value.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// ValidTaskPriority reports whether p is a known priority value.
func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// PriorityRank orders priorities for sorting: urgent > high > medium > low.
func PriorityRank(p TaskPriority) int {
	switch p {
	case TaskPriorityUrgent:
		return 4
	case TaskPriorityHigh:
		return 3
	case TaskPriorityMedium:
		return 2
	case TaskPriorityLow:
		return 1
	}
	return 0
}

type TaskCategory string

const (
	TaskCategoryWork     TaskCategory = "work"
	TaskCategoryPersonal TaskCategory = "personal"
	TaskCategoryHealth   TaskCategory = "health"
	TaskCategoryLearning TaskCategory = "learning"
	TaskCategoryFinance  TaskCategory = "finance"
	TaskCategoryOther    TaskCategory = "other"
)

// ValidTaskCategory reports whether c is a known category value.
func ValidTaskCategory(c TaskCategory) bool {
	switch c {
	case TaskCategoryWork, TaskCategoryPersonal, TaskCategoryHealth,
		TaskCategoryLearning, TaskCategoryFinance, TaskCategoryOther:
		return true
	}
	return false
}

type Task struct {
	ID                uint64         `gorm:"primarykey" json:"id"`
	OwnerID           uint64         `gorm:"not null;index:idx_tasks_owner_status;index:idx_tasks_owner_due" json:"owner_id"`
	Title             string         `gorm:"type:varchar(200);not null" json:"title"`
	Description       string         `gorm:"type:text" json:"description"`
	Status            TaskStatus     `gorm:"type:varchar(20);not null;default:'pending';index:idx_tasks_owner_status" json:"status"`
	Priority          TaskPriority   `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Category          TaskCategory   `gorm:"type:varchar(20);not null;default:'personal'" json:"category"`
	DueDate           *time.Time     `gorm:"index:idx_tasks_owner_due" json:"due_date"`
	EstimatedDuration *int           `json:"estimated_duration"`
	Tags              []string       `gorm:"serializer:json" json:"tags"`
	AIGenerated       bool           `gorm:"not null;default:false" json:"ai_generated"`
	CompletedAt       *time.Time     `json:"completed_at"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner    User      `gorm:"foreignKey:OwnerID" json:"-"`
	Subtasks []Subtask `gorm:"foreignKey:TaskID" json:"subtasks,omitempty"`
	Notes    []Note    `gorm:"foreignKey:TaskID" json:"notes,omitempty"`
}

type Subtask struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	TaskID      uint64     `gorm:"not null;index" json:"task_id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Note struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    uint64    `gorm:"not null;index" json:"task_id"`
	Content   string    `gorm:"type:varchar(500);not null" json:"content"`
	IsAI      bool      `gorm:"not null;default:false" json:"is_ai"`
	CreatedAt time.Time `json:"created_at"`
}

// IsCompleted reports whether the task has been completed.
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// IsOverdue reports whether the task has a due date in the past and is not completed.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.IsCompleted()
}

// CompletionPercentage derives progress from subtasks. A task without subtasks
// is either fully complete or not started.
func (t *Task) CompletionPercentage() int {
	if len(t.Subtasks) == 0 {
		if t.IsCompleted() {
			return 100
		}
		return 0
	}

	completed := 0
	for _, st := range t.Subtasks {
		if st.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(t.Subtasks)) * 100))
}
