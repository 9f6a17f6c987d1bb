package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/research-queue/internal/domain/research"
	"github.com/andrescamacho/research-queue/internal/domain/shared"
)

// GormHostStateRepository implements research.ProgressRepository using GORM
type GormHostStateRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// Compile-time interface check
var _ research.ProgressRepository = (*GormHostStateRepository)(nil)

// NewGormHostStateRepository creates a new host state repository
// If clock is nil, uses RealClock (production behavior)
func NewGormHostStateRepository(db *gorm.DB, clock shared.Clock) *GormHostStateRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormHostStateRepository{db: db, clock: clock}
}

// SaveHostState upserts the current project and every progress value
func (r *GormHostStateRepository) SaveHostState(ctx context.Context, state *research.HostState) error {
	if state == nil || state.SessionID.IsZero() {
		return fmt.Errorf("host state requires a session id")
	}
	sessionID := state.SessionID.String()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hostModel := HostStateModel{
			SessionID:        sessionID,
			CurrentProjectID: state.CurrentProjectID,
			UpdatedAt:        r.clock.Now(),
		}
		if err := tx.Save(&hostModel).Error; err != nil {
			return fmt.Errorf("failed to save host state: %w", err)
		}

		if len(state.Progress) == 0 {
			return nil
		}
		progress := make([]ProjectProgressModel, 0, len(state.Progress))
		for projectID, value := range state.Progress {
			progress = append(progress, ProjectProgressModel{
				SessionID: sessionID,
				ProjectID: projectID,
				Progress:  value,
			})
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "project_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"progress"}),
		}).Create(&progress).Error
		if err != nil {
			return fmt.Errorf("failed to save progress: %w", err)
		}
		return nil
	})
}

// LoadHostState returns the saved state, or an empty state for a new session
func (r *GormHostStateRepository) LoadHostState(ctx context.Context, sessionID shared.SessionID) (*research.HostState, error) {
	state := &research.HostState{
		SessionID: sessionID,
		Progress:  make(map[string]float64),
	}

	var hostModel HostStateModel
	result := r.db.WithContext(ctx).Where("session_id = ?", sessionID.String()).First(&hostModel)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load host state: %w", result.Error)
	}
	if result.Error == nil {
		state.CurrentProjectID = hostModel.CurrentProjectID
	}

	var progress []ProjectProgressModel
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID.String()).Find(&progress).Error; err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	for _, model := range progress {
		state.Progress[model.ProjectID] = model.Progress
	}

	return state, nil
}

// SessionSummary describes one save slot
type SessionSummary struct {
	SessionID        string
	CurrentProjectID string
	UpdatedAt        time.Time
}

// ListSessions returns every saved session, most recently updated first
func (r *GormHostStateRepository) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	var models []HostStateModel
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Order("session_id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	summaries := make([]SessionSummary, 0, len(models))
	for _, model := range models {
		summaries = append(summaries, SessionSummary{
			SessionID:        model.SessionID,
			CurrentProjectID: model.CurrentProjectID,
			UpdatedAt:        model.UpdatedAt,
		})
	}
	return summaries, nil
}
