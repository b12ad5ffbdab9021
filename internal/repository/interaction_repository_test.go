package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskpilot/taskpilot-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AIInteraction{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func storedInteraction(userID uint64, createdAt, expiresAt time.Time) *models.AIInteraction {
	return &models.AIInteraction{
		UserID:      userID,
		SessionID:   "sess",
		Type:        models.InteractionTypeChat,
		UserMessage: "hello",
		AIResponse:  "hi",
		CreatedAt:   createdAt,
		ExpiresAt:   expiresAt,
	}
}

func TestGormInteractionRepository_ListActiveByUser(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewInteractionRepository(db)

	now := time.Now()
	older := storedInteraction(1, now.Add(-2*time.Hour), now.Add(time.Hour))
	newer := storedInteraction(1, now.Add(-1*time.Hour), now.Add(time.Hour))
	expired := storedInteraction(1, now.Add(-8*24*time.Hour), now.Add(-time.Hour))
	foreign := storedInteraction(2, now, now.Add(time.Hour))
	for _, in := range []*models.AIInteraction{older, newer, expired, foreign} {
		require.NoError(t, repo.Create(in))
	}

	interactions, err := repo.ListActiveByUser(1, now)
	require.NoError(t, err)
	require.Len(t, interactions, 2, "expired and foreign rows are excluded")
	require.Equal(t, newer.ID, interactions[0].ID, "newest first")
	require.Equal(t, older.ID, interactions[1].ID)
}

func TestGormInteractionRepository_FindByIDForUser(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewInteractionRepository(db)

	now := time.Now()
	mine := storedInteraction(1, now, now.Add(time.Hour))
	require.NoError(t, repo.Create(mine))

	found, err := repo.FindByIDForUser(mine.ID, 1)
	require.NoError(t, err)
	require.Equal(t, mine.ID, found.ID)

	_, err = repo.FindByIDForUser(mine.ID, 2)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGormInteractionRepository_DeleteExpired(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewInteractionRepository(db)

	now := time.Now()
	live := storedInteraction(1, now, now.Add(time.Hour))
	expired1 := storedInteraction(1, now.Add(-8*24*time.Hour), now.Add(-time.Hour))
	expired2 := storedInteraction(2, now.Add(-9*24*time.Hour), now.Add(-2*time.Hour))
	for _, in := range []*models.AIInteraction{live, expired1, expired2} {
		require.NoError(t, repo.Create(in))
	}

	count, err := repo.DeleteExpired(now)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	remaining, err := repo.ListActiveByUser(1, now)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, live.ID, remaining[0].ID)
}
