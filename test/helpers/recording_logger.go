package helpers

import (
	"sync"

	"github.com/andrescamacho/research-queue/internal/application/common"
)

// LogRecord is one captured log call
type LogRecord struct {
	Level    string
	Message  string
	Metadata map[string]interface{}
}

// RecordingLogger captures log calls for assertions
type RecordingLogger struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewRecordingLogger creates an empty RecordingLogger
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, LogRecord{Level: level, Message: message, Metadata: metadata})
}

// Records returns a copy of the captured records
func (l *RecordingLogger) Records() []LogRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogRecord{}, l.records...)
}

// ByLevel returns the captured records at one level
func (l *RecordingLogger) ByLevel(level string) []LogRecord {
	var matched []LogRecord
	for _, record := range l.Records() {
		if record.Level == level {
			matched = append(matched, record)
		}
	}
	return matched
}

var _ common.Logger = (*RecordingLogger)(nil)
