package research

import (
	"context"

	"github.com/andrescamacho/research-queue/internal/domain/shared"
)

// Catalog is the already-built forest of research nodes.
// Initialize must be safe to call more than once.
type Catalog interface {
	Forest() []*Node
	Initialized() bool
	Initialize(ctx context.Context) error
	// FindByProjectID returns the first node wrapping the given project, or nil
	FindByProjectID(projectID string) *Node
}

// Host is the scheduler that owns the current project pointer and the
// progress map. The queue keeps the current project in sync with its head;
// the progress engine reads and writes progress through it.
type Host interface {
	CurrentProject() *ProjectDef
	SetCurrentProject(project *ProjectDef)

	GetProgress(project *ProjectDef) float64
	SetProgress(project *ProjectDef, value float64)
	GlobalProgressRate() float64
	FastResearch() bool

	// IsFinished is the host's completion predicate for a project
	IsFinished(project *ProjectDef) bool

	// ReapplyAllEffects re-runs unlock effects across the whole catalog
	ReapplyAllEffects(ctx context.Context)
}

// NotificationSink receives completion notifications. Fire-and-forget.
type NotificationSink interface {
	Notify(ctx context.Context, notification Notification)
}

// SnapshotRepository persists the queue as ordered project identifiers
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *SavedQueueSnapshot) error
	// Load returns an empty snapshot when nothing was saved for the session
	Load(ctx context.Context, sessionID shared.SessionID) (*SavedQueueSnapshot, error)
}

// HostState is the host-owned part of a save: accumulated progress per
// project and the current project pointer. It is not part of the queue.
type HostState struct {
	SessionID        shared.SessionID
	CurrentProjectID string
	Progress         map[string]float64
}

// ProgressRepository persists host state between sessions
type ProgressRepository interface {
	SaveHostState(ctx context.Context, state *HostState) error
	LoadHostState(ctx context.Context, sessionID shared.SessionID) (*HostState, error)
}

// NotificationRepository keeps the history of emitted notifications
type NotificationRepository interface {
	Append(ctx context.Context, sessionID shared.SessionID, notification Notification) error
	List(ctx context.Context, sessionID shared.SessionID, limit int) ([]Notification, error)
}
