package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskpilot/taskpilot-api/internal/models"
)

func TestRetentionService_Sweep(t *testing.T) {
	repo := &fakeInteractionRepo{}
	now := time.Now()

	require.NoError(t, repo.Create(&models.AIInteraction{UserID: 1, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Create(&models.AIInteraction{UserID: 1, ExpiresAt: now.Add(-time.Hour)}))
	require.NoError(t, repo.Create(&models.AIInteraction{UserID: 2, ExpiresAt: now.Add(-2 * time.Hour)}))

	service := NewRetentionService(repo)
	service.Sweep()

	require.Len(t, repo.interactions, 1)
	require.True(t, repo.interactions[0].ExpiresAt.After(now))
}

func TestRetentionService_StartStop(t *testing.T) {
	service := NewRetentionService(&fakeInteractionRepo{})

	require.NoError(t, service.Start())
	service.Stop()
}
