package research

import (
	"context"
	"fmt"

	"github.com/andrescamacho/research-queue/internal/application/common"
	domainResearch "github.com/andrescamacho/research-queue/internal/domain/research"
	"github.com/andrescamacho/research-queue/internal/domain/shared"
)

// RestoreResult reports how a saved queue was rebuilt
type RestoreResult struct {
	Restored []string
	Skipped  []string
}

// QueuePersistence saves the queue as project identifiers and rebuilds it
// against the catalog on load. Node references are never persisted because
// nodes may not exist yet when a save is read back.
type QueuePersistence struct {
	queue     *domainResearch.ResearchQueue
	catalog   domainResearch.Catalog
	snapshots domainResearch.SnapshotRepository
}

// NewQueuePersistence creates a persistence adapter. snapshots may be nil
// when the session only needs Snapshot/Restore.
func NewQueuePersistence(
	queue *domainResearch.ResearchQueue,
	catalog domainResearch.Catalog,
	snapshots domainResearch.SnapshotRepository,
) *QueuePersistence {
	return &QueuePersistence{
		queue:     queue,
		catalog:   catalog,
		snapshots: snapshots,
	}
}

// Snapshot captures the queue order at the moment it is called
func (p *QueuePersistence) Snapshot(sessionID shared.SessionID) *domainResearch.SavedQueueSnapshot {
	return domainResearch.NewSavedQueueSnapshot(sessionID, p.queue.ProjectIDs())
}

// Restore initializes the catalog if needed and enqueues every identifier
// that still resolves, in saved order. Identifiers with no matching node are
// skipped: catalog content may change between save and load.
func (p *QueuePersistence) Restore(ctx context.Context, snapshot *domainResearch.SavedQueueSnapshot) (*RestoreResult, error) {
	logger := common.LoggerFromContext(ctx)

	if !p.catalog.Initialized() {
		if err := p.catalog.Initialize(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize catalog: %w", err)
		}
	}

	result := &RestoreResult{}
	if snapshot.IsEmpty() {
		p.queue.SyncCurrentProject()
		return result, nil
	}

	for _, projectID := range snapshot.ProjectIDs {
		node := p.catalog.FindByProjectID(projectID)
		if node == nil {
			result.Skipped = append(result.Skipped, projectID)
			logger.Log(common.LevelDebug, "Skipping saved project missing from catalog", map[string]interface{}{
				"project_id": projectID,
			})
			continue
		}
		p.queue.Enqueue(node, true)
		result.Restored = append(result.Restored, projectID)
	}

	return result, nil
}

// Save writes the current queue snapshot to the repository
func (p *QueuePersistence) Save(ctx context.Context, sessionID shared.SessionID) (*domainResearch.SavedQueueSnapshot, error) {
	if p.snapshots == nil {
		return nil, fmt.Errorf("no snapshot repository configured")
	}

	snapshot := p.Snapshot(sessionID)
	if err := p.snapshots.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save queue snapshot: %w", err)
	}
	return snapshot, nil
}

// Load reads the saved snapshot for the session and restores it
func (p *QueuePersistence) Load(ctx context.Context, sessionID shared.SessionID) (*RestoreResult, error) {
	if p.snapshots == nil {
		return nil, fmt.Errorf("no snapshot repository configured")
	}

	snapshot, err := p.snapshots.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load queue snapshot: %w", err)
	}
	return p.Restore(ctx, snapshot)
}
