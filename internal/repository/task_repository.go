package repository

import (
	"github.com/taskpilot/taskpilot-api/internal/database"
	"github.com/taskpilot/taskpilot-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByIDForOwner finds a task by ID restricted to the owner, with subtasks
// and notes loaded in insertion order.
func (r *GormTaskRepository) FindByIDForOwner(id, ownerID uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Scopes(database.OwnedBy(ownerID)).
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("subtasks.id ASC")
		}).
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("notes.id ASC")
		}).
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByOwner retrieves all tasks for an owner, newest first
func (r *GormTaskRepository) ListByOwner(ownerID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Scopes(database.OwnedBy(ownerID)).
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("subtasks.id ASC")
		}).
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists task changes including subtask state
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(task).Error
}

// Delete removes a task with its subtasks and notes, restricted to the owner
func (r *GormTaskRepository) Delete(id, ownerID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Scopes(database.OwnedBy(ownerID)).Delete(&models.Task{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.Subtask{}).Error; err != nil {
			return err
		}

		return tx.Where("task_id = ?", id).Delete(&models.Note{}).Error
	})
}

// AddSubtask appends a subtask to a task
func (r *GormTaskRepository) AddSubtask(subtask *models.Subtask) error {
	return r.db.Create(subtask).Error
}

// AddNote appends a note to a task
func (r *GormTaskRepository) AddNote(note *models.Note) error {
	return r.db.Create(note).Error
}
