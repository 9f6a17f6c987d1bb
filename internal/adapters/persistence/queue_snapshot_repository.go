package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/research-queue/internal/domain/research"
	"github.com/andrescamacho/research-queue/internal/domain/shared"
)

// GormQueueSnapshotRepository implements research.SnapshotRepository using GORM
type GormQueueSnapshotRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// Compile-time interface check
var _ research.SnapshotRepository = (*GormQueueSnapshotRepository)(nil)

// NewGormQueueSnapshotRepository creates a new snapshot repository
// If clock is nil, uses RealClock (production behavior)
func NewGormQueueSnapshotRepository(db *gorm.DB, clock shared.Clock) *GormQueueSnapshotRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormQueueSnapshotRepository{db: db, clock: clock}
}

// Save replaces the session's saved queue with the snapshot
func (r *GormQueueSnapshotRepository) Save(ctx context.Context, snapshot *research.SavedQueueSnapshot) error {
	if snapshot == nil || snapshot.SessionID.IsZero() {
		return fmt.Errorf("snapshot requires a session id")
	}

	savedAt := r.clock.Now()
	models := make([]QueueEntryModel, 0, len(snapshot.ProjectIDs))
	for i, projectID := range snapshot.ProjectIDs {
		models = append(models, QueueEntryModel{
			SessionID: snapshot.SessionID.String(),
			Position:  i,
			ProjectID: projectID,
			SavedAt:   savedAt,
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", snapshot.SessionID.String()).Delete(&QueueEntryModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear saved queue: %w", err)
		}
		if len(models) == 0 {
			return nil
		}
		if err := tx.Create(&models).Error; err != nil {
			return fmt.Errorf("failed to insert queue entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save queue snapshot for session %s: %w", snapshot.SessionID, err)
	}
	return nil
}

// Load returns the saved queue in order, or an empty snapshot if none was saved
func (r *GormQueueSnapshotRepository) Load(ctx context.Context, sessionID shared.SessionID) (*research.SavedQueueSnapshot, error) {
	var models []QueueEntryModel
	result := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID.String()).
		Order("position ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load queue snapshot: %w", result.Error)
	}

	ids := make([]string, 0, len(models))
	for _, model := range models {
		ids = append(ids, model.ProjectID)
	}
	return research.NewSavedQueueSnapshot(sessionID, ids), nil
}
