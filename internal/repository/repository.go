package repository

import (
	"time"

	"github.com/taskpilot/taskpilot-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(email string) (*models.User, error)
}

// TaskRepository defines the interface for task data access. Every lookup and
// mutation is scoped to an owner; a task belonging to another user is
// indistinguishable from a missing one.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByIDForOwner finds a task by ID, restricted to the given owner,
	// with subtasks and notes loaded
	FindByIDForOwner(id, ownerID uint64) (*models.Task, error)

	// ListByOwner retrieves all tasks for an owner, newest first
	ListByOwner(ownerID uint64) ([]models.Task, error)

	// Update persists task changes including subtask state
	Update(task *models.Task) error

	// Delete removes a task and its subtasks and notes, restricted to the owner
	Delete(id, ownerID uint64) error

	// AddSubtask appends a subtask to a task
	AddSubtask(subtask *models.Subtask) error

	// AddNote appends a note to a task
	AddNote(note *models.Note) error
}

// InteractionRepository defines the interface for assistant interaction logs
type InteractionRepository interface {
	// Create stores a new interaction
	Create(interaction *models.AIInteraction) error

	// FindByIDForUser finds an interaction by ID, restricted to the given user
	FindByIDForUser(id, userID uint64) (*models.AIInteraction, error)

	// ListActiveByUser lists a user's unexpired interactions, newest first
	ListActiveByUser(userID uint64, now time.Time) ([]models.AIInteraction, error)

	// Update persists interaction changes (feedback)
	Update(interaction *models.AIInteraction) error

	// DeleteExpired removes interactions whose retention window has passed
	// and returns the number of rows removed
	DeleteExpired(now time.Time) (int64, error)
}
