package repository

import (
	"time"

	"github.com/taskpilot/taskpilot-api/internal/models"
	"gorm.io/gorm"
)

// GormInteractionRepository is a GORM implementation of InteractionRepository
type GormInteractionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new InteractionRepository
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &GormInteractionRepository{db: db}
}

// Create stores a new interaction
func (r *GormInteractionRepository) Create(interaction *models.AIInteraction) error {
	return r.db.Create(interaction).Error
}

// FindByIDForUser finds an interaction by ID restricted to the user
func (r *GormInteractionRepository) FindByIDForUser(id, userID uint64) (*models.AIInteraction, error) {
	var interaction models.AIInteraction
	err := r.db.Where("user_id = ?", userID).First(&interaction, id).Error
	if err != nil {
		return nil, err
	}
	return &interaction, nil
}

// ListActiveByUser lists a user's unexpired interactions, newest first. The
// expiry filter keeps the retention window honest between sweeps.
func (r *GormInteractionRepository) ListActiveByUser(userID uint64, now time.Time) ([]models.AIInteraction, error) {
	var interactions []models.AIInteraction
	err := r.db.
		Where("user_id = ? AND expires_at > ?", userID, now).
		Order("created_at DESC").
		Find(&interactions).Error
	if err != nil {
		return nil, err
	}
	return interactions, nil
}

// Update persists interaction changes
func (r *GormInteractionRepository) Update(interaction *models.AIInteraction) error {
	return r.db.Save(interaction).Error
}

// DeleteExpired removes interactions whose retention window has passed
func (r *GormInteractionRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at <= ?", now).Delete(&models.AIInteraction{})
	return result.RowsAffected, result.Error
}
