package persistence

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/research-queue/internal/domain/shared"
)

// SessionLogEntry represents a stored log line
type SessionLogEntry struct {
	ID        int
	SessionID string
	Timestamp time.Time
	Level     string
	Message   string
	Metadata  map[string]interface{}
}

// GormSessionLogRepository persists session log lines with time-windowed
// deduplication, so a tick loop repeating the same error does not flood the table.
type GormSessionLogRepository struct {
	db    *gorm.DB
	clock shared.Clock

	dedupCache   map[string]time.Time // key: sessionID|message, value: last logged time
	dedupMu      sync.Mutex
	dedupWindow  time.Duration
	dedupMaxSize int
}

// NewGormSessionLogRepository creates a new session log repository
// If clock is nil, uses RealClock (production behavior)
func NewGormSessionLogRepository(db *gorm.DB, clock shared.Clock) *GormSessionLogRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormSessionLogRepository{
		db:           db,
		clock:        clock,
		dedupCache:   make(map[string]time.Time),
		dedupWindow:  60 * time.Second,
		dedupMaxSize: 10000,
	}
}

// Log writes a log entry unless the same message was logged for the session within the window
func (r *GormSessionLogRepository) Log(ctx context.Context, sessionID string, message, level string, metadata map[string]interface{}) error {
	now := r.clock.Now()
	cacheKey := sessionID + "|" + message

	r.dedupMu.Lock()
	if lastLogged, exists := r.dedupCache[cacheKey]; exists && now.Sub(lastLogged) < r.dedupWindow {
		r.dedupMu.Unlock()
		return nil
	}
	if len(r.dedupCache) >= r.dedupMaxSize {
		r.cleanupDedupCache(now)
	}
	r.dedupCache[cacheKey] = now
	r.dedupMu.Unlock()

	var metadataJSON string
	if len(metadata) > 0 {
		if jsonBytes, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	entry := &SessionLogModel{
		SessionID: sessionID,
		Timestamp: now,
		Level:     level,
		Message:   message,
		Metadata:  metadataJSON,
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// cleanupDedupCache removes entries older than the window. Caller holds dedupMu.
func (r *GormSessionLogRepository) cleanupDedupCache(now time.Time) {
	cutoff := now.Add(-r.dedupWindow)
	for key, timestamp := range r.dedupCache {
		if timestamp.Before(cutoff) {
			delete(r.dedupCache, key)
		}
	}
}

// GetLogs retrieves the newest logs for a session, optionally filtered by level
func (r *GormSessionLogRepository) GetLogs(ctx context.Context, sessionID string, limit int, level *string) ([]SessionLogEntry, error) {
	var models []SessionLogModel

	query := r.db.WithContext(ctx).Where("session_id = ?", sessionID)
	if level != nil {
		query = query.Where("level = ?", *level)
	}
	query = query.Order("timestamp DESC").Order("id DESC").Limit(limit)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entries := make([]SessionLogEntry, len(models))
	for i, model := range models {
		var metadata map[string]interface{}
		if model.Metadata != "" {
			if err := json.Unmarshal([]byte(model.Metadata), &metadata); err != nil {
				metadata = nil
			}
		}
		entries[i] = SessionLogEntry{
			ID:        model.ID,
			SessionID: model.SessionID,
			Timestamp: model.Timestamp,
			Level:     model.Level,
			Message:   model.Message,
			Metadata:  metadata,
		}
	}
	return entries, nil
}
