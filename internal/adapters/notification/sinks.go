package notification

import (
	"context"

	"github.com/andrescamacho/research-queue/internal/application/common"
	"github.com/andrescamacho/research-queue/internal/domain/research"
	"github.com/andrescamacho/research-queue/internal/domain/shared"
)

// LogSink writes notifications to the logger carried in the context.
// Negative notifications are logged as warnings so they stand out.
type LogSink struct{}

// NewLogSink creates a LogSink
func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Notify(ctx context.Context, n research.Notification) {
	level := common.LevelInfo
	if n.Severity == research.SeverityNegative {
		level = common.LevelWarning
	}
	common.LoggerFromContext(ctx).Log(level, n.Title, map[string]interface{}{
		"project_id": n.ProjectID,
		"severity":   n.Severity.String(),
		"body":       n.Body,
	})
}

// RepositorySink stores notifications in the session's history.
// Storage failures are logged and swallowed: notifications are fire-and-forget.
type RepositorySink struct {
	repo      research.NotificationRepository
	sessionID shared.SessionID
}

// NewRepositorySink creates a RepositorySink for one session
func NewRepositorySink(repo research.NotificationRepository, sessionID shared.SessionID) *RepositorySink {
	return &RepositorySink{repo: repo, sessionID: sessionID}
}

func (s *RepositorySink) Notify(ctx context.Context, n research.Notification) {
	if err := s.repo.Append(ctx, s.sessionID, n); err != nil {
		common.LoggerFromContext(ctx).Log(common.LevelError, "Failed to store notification", map[string]interface{}{
			"session_id": s.sessionID.String(),
			"project_id": n.ProjectID,
			"error":      err.Error(),
		})
	}
}

// MultiSink fans a notification out to several sinks in order
type MultiSink struct {
	sinks []research.NotificationSink
}

// NewMultiSink creates a MultiSink, ignoring nil sinks
func NewMultiSink(sinks ...research.NotificationSink) *MultiSink {
	filtered := make([]research.NotificationSink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			filtered = append(filtered, sink)
		}
	}
	return &MultiSink{sinks: filtered}
}

func (s *MultiSink) Notify(ctx context.Context, n research.Notification) {
	for _, sink := range s.sinks {
		sink.Notify(ctx, n)
	}
}

// Compile-time interface checks
var (
	_ research.NotificationSink = (*LogSink)(nil)
	_ research.NotificationSink = (*RepositorySink)(nil)
	_ research.NotificationSink = (*MultiSink)(nil)
)
