package logging

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/andrescamacho/research-queue/internal/application/common"
)

// SessionLogWriter persists log lines for a session
type SessionLogWriter interface {
	Log(ctx context.Context, sessionID string, message, level string, metadata map[string]interface{}) error
}

// SessionLogger forwards every entry to the console logger and also
// persists it under the session's save slot.
type SessionLogger struct {
	console   common.Logger
	writer    SessionLogWriter
	sessionID string
	timeout   time.Duration
}

// NewSessionLogger creates a logger that tees into the session log repository
func NewSessionLogger(console common.Logger, writer SessionLogWriter, sessionID string) *SessionLogger {
	return &SessionLogger{
		console:   console,
		writer:    writer,
		sessionID: sessionID,
		timeout:   5 * time.Second,
	}
}

// Log implements common.Logger
func (l *SessionLogger) Log(level, message string, metadata map[string]interface{}) {
	if l.console != nil {
		l.console.Log(level, message, metadata)
	}
	if l.writer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	if err := l.writer.Log(ctx, l.sessionID, message, level, metadata); err != nil {
		// Never fail the caller because the log table is unavailable
		fmt.Fprintf(os.Stderr, "[%s] [%s] ERROR: failed to persist log: %v\n",
			time.Now().Format(time.RFC3339), l.sessionID, err)
	}
}

var _ common.Logger = (*SessionLogger)(nil)
