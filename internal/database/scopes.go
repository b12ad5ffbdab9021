package database

import (
	"gorm.io/gorm"
)

// OwnedBy restricts a task query to a single owner. Every task read and
// mutation goes through this scope so that foreign tasks behave as absent.
func OwnedBy(ownerID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	}
}
