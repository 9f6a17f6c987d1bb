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

func TestNotificationRepository_ListNewestFirstWithLimit(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormNotificationRepository(db)
	sessionID := shared.MustNewSessionID("colony-1")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Append(context.Background(), sessionID, research.Notification{
			Title:     "Research finished: " + id,
			Body:      "body",
			Severity:  research.SeverityPositive,
			ProjectID: id,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	// Act
	listed, err := repo.List(context.Background(), sessionID, 2)

	// Assert
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "c", listed[0].ProjectID)
	assert.Equal(t, "b", listed[1].ProjectID)
	assert.Equal(t, research.SeverityPositive, listed[0].Severity)
	assert.True(t, listed[0].Timestamp.Equal(base.Add(2*time.Minute)))
}

func TestNotificationRepository_SessionsAreIsolated(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormNotificationRepository(db)
	require.NoError(t, repo.Append(context.Background(), shared.MustNewSessionID("first"), research.Notification{
		Title:     "done",
		Severity:  research.SeverityNegative,
		Timestamp: time.Now(),
	}))

	listed, err := repo.List(context.Background(), shared.MustNewSessionID("second"), 0)

	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestNotificationRepository_SkipsUnknownSeverity(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormNotificationRepository(db)
	require.NoError(t, db.Create(&persistence.NotificationModel{
		SessionID: "colony-1",
		Title:     "legacy",
		Severity:  "CRITICAL",
		Timestamp: time.Now(),
	}).Error)

	listed, err := repo.List(context.Background(), shared.MustNewSessionID("colony-1"), 10)

	require.NoError(t, err)
	assert.Empty(t, listed)
}
