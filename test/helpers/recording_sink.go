package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/research-queue/internal/domain/research"
)

// RecordingSink collects every notification it receives
type RecordingSink struct {
	mu            sync.Mutex
	notifications []research.Notification
}

// NewRecordingSink creates an empty RecordingSink
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (s *RecordingSink) Notify(ctx context.Context, n research.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
}

// Notifications returns a copy of the received notifications
func (s *RecordingSink) Notifications() []research.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]research.Notification{}, s.notifications...)
}

// Count returns how many notifications were received
func (s *RecordingSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notifications)
}

// Last returns the most recent notification, or false if none arrived
func (s *RecordingSink) Last() (research.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notifications) == 0 {
		return research.Notification{}, false
	}
	return s.notifications[len(s.notifications)-1], true
}

var _ research.NotificationSink = (*RecordingSink)(nil)
