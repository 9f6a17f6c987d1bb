package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/research-queue/internal/adapters/persistence"
	"github.com/andrescamacho/research-queue/internal/domain/research"
	"github.com/andrescamacho/research-queue/internal/domain/shared"
	"github.com/andrescamacho/research-queue/test/helpers"
)

func TestHostStateRepository_SaveAndLoad(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormHostStateRepository(db, shared.NewMockClock(time.Time{}))
	sessionID := shared.MustNewSessionID("colony-1")
	state := &research.HostState{
		SessionID:        sessionID,
		CurrentProjectID: "smithing",
		Progress:         map[string]float64{"stonecutting": 300, "smithing": 12.5},
	}

	// Act
	require.NoError(t, repo.SaveHostState(context.Background(), state))
	loaded, err := repo.LoadHostState(context.Background(), sessionID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "smithing", loaded.CurrentProjectID)
	assert.Equal(t, state.Progress, loaded.Progress)
}

func TestHostStateRepository_UpsertsProgress(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormHostStateRepository(db, nil)
	sessionID := shared.MustNewSessionID("colony-1")

	require.NoError(t, repo.SaveHostState(context.Background(), &research.HostState{
		SessionID:        sessionID,
		CurrentProjectID: "a",
		Progress:         map[string]float64{"a": 1, "b": 2},
	}))
	require.NoError(t, repo.SaveHostState(context.Background(), &research.HostState{
		SessionID: sessionID,
		Progress:  map[string]float64{"a": 5},
	}))

	loaded, err := repo.LoadHostState(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Empty(t, loaded.CurrentProjectID)
	assert.Equal(t, map[string]float64{"a": 5, "b": 2}, loaded.Progress)
}

func TestHostStateRepository_UnknownSessionIsEmpty(t *testing.T) {
	repo := persistence.NewGormHostStateRepository(helpers.NewTestDB(t), nil)

	loaded, err := repo.LoadHostState(context.Background(), shared.MustNewSessionID("new"))

	require.NoError(t, err)
	assert.Empty(t, loaded.CurrentProjectID)
	assert.NotNil(t, loaded.Progress)
	assert.Empty(t, loaded.Progress)
}

func TestHostStateRepository_RequiresSessionID(t *testing.T) {
	repo := persistence.NewGormHostStateRepository(helpers.NewTestDB(t), nil)

	assert.Error(t, repo.SaveHostState(context.Background(), &research.HostState{}))
	assert.Error(t, repo.SaveHostState(context.Background(), nil))
}

func TestHostStateRepository_ListSessionsNewestFirst(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Time{})
	repo := persistence.NewGormHostStateRepository(db, clock)

	for _, id := range []string{"older", "newer"} {
		require.NoError(t, repo.SaveHostState(context.Background(), &research.HostState{
			SessionID:        shared.MustNewSessionID(id),
			CurrentProjectID: id + "-project",
		}))
		clock.Advance(time.Minute)
	}

	// Act
	sessions, err := repo.ListSessions(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "newer", sessions[0].SessionID)
	assert.Equal(t, "newer-project", sessions[0].CurrentProjectID)
	assert.Equal(t, "older", sessions[1].SessionID)
	assert.True(t, sessions[0].UpdatedAt.After(sessions[1].UpdatedAt))
}
