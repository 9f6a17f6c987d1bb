package research

import "github.com/andrescamacho/research-queue/internal/domain/shared"

// SavedQueueSnapshot is the persisted form of a queue: the project
// identifiers in queue order. Node depth, cost and tree are catalog-derived
// and never saved.
type SavedQueueSnapshot struct {
	SessionID  shared.SessionID
	ProjectIDs []string
}

// NewSavedQueueSnapshot copies ids so later queue mutations cannot leak in
func NewSavedQueueSnapshot(sessionID shared.SessionID, ids []string) *SavedQueueSnapshot {
	copied := make([]string, len(ids))
	copy(copied, ids)
	return &SavedQueueSnapshot{SessionID: sessionID, ProjectIDs: copied}
}

// IsEmpty reports whether the snapshot holds no identifiers
func (s *SavedQueueSnapshot) IsEmpty() bool {
	return s == nil || len(s.ProjectIDs) == 0
}
