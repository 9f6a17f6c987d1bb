package research

import (
	"context"
	"fmt"

	domainResearch "github.com/andrescamacho/research-queue/internal/domain/research"
	"github.com/andrescamacho/research-queue/internal/domain/shared"
)

// SessionDependencies are the collaborators a session is built from.
// Catalog and Host are required.
type SessionDependencies struct {
	Catalog                domainResearch.Catalog
	Host                   domainResearch.Host
	Sink                   domainResearch.NotificationSink
	Snapshots              domainResearch.SnapshotRepository
	Clock                  shared.Clock
	Recorder               ProgressRecorder
	FastResearchMultiplier float64
}

// Session owns the research queue and everything that mutates it for one
// simulation session. Separate sessions share no state.
type Session struct {
	id          shared.SessionID
	catalog     domainResearch.Catalog
	host        domainResearch.Host
	queue       *domainResearch.ResearchQueue
	engine      *ProgressEngine
	persistence *QueuePersistence
}

// NewSession wires a queue, a progress engine and a persistence adapter
func NewSession(id shared.SessionID, deps SessionDependencies) (*Session, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("session id is required")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("session %s: catalog is required", id)
	}
	if deps.Host == nil {
		return nil, fmt.Errorf("session %s: host is required", id)
	}

	queue := domainResearch.NewResearchQueue(deps.Host)
	return &Session{
		id:          id,
		catalog:     deps.Catalog,
		host:        deps.Host,
		queue:       queue,
		engine:      NewProgressEngine(queue, deps.Host, deps.Sink, deps.Clock, deps.Recorder, deps.FastResearchMultiplier),
		persistence: NewQueuePersistence(queue, deps.Catalog, deps.Snapshots),
	}, nil
}

func (s *Session) ID() shared.SessionID { return s.id }
func (s *Session) Queue() *domainResearch.ResearchQueue { return s.queue }
func (s *Session) Catalog() domainResearch.Catalog { return s.catalog }
func (s *Session) Host() domainResearch.Host { return s.host }
func (s *Session) Engine() *ProgressEngine { return s.engine }
func (s *Session) Persistence() *QueuePersistence { return s.persistence }

// ResolveNodes maps project identifiers to catalog nodes, initializing the
// catalog first if needed. Unknown identifiers are an error here, unlike on load.
func (s *Session) ResolveNodes(ctx context.Context, projectIDs []string) ([]*domainResearch.Node, error) {
	if !s.catalog.Initialized() {
		if err := s.catalog.Initialize(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize catalog: %w", err)
		}
	}

	nodes := make([]*domainResearch.Node, 0, len(projectIDs))
	for _, projectID := range projectIDs {
		node := s.catalog.FindByProjectID(projectID)
		if node == nil {
			return nil, domainResearch.NewProjectNotFoundError(projectID)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// Save persists the queue snapshot for this session
func (s *Session) Save(ctx context.Context) (*domainResearch.SavedQueueSnapshot, error) {
	return s.persistence.Save(ctx, s.id)
}

// Load restores the saved queue for this session
func (s *Session) Load(ctx context.Context) (*RestoreResult, error) {
	result, err := s.persistence.Load(ctx, s.id)
	if err != nil {
		return nil, err
	}
	s.RecordQueueLength()
	return result, nil
}

// RecordQueueLength publishes the queue length to the progress recorder.
// Callers invoke it after every queue mutation.
func (s *Session) RecordQueueLength() {
	s.engine.recordQueueLength()
}

// SplitFinished separates nodes whose project the host already reports as
// finished. Finished projects never go back into the queue.
func (s *Session) SplitFinished(nodes []*domainResearch.Node) (unfinished []*domainResearch.Node, finished []string) {
	unfinished = make([]*domainResearch.Node, 0, len(nodes))
	for _, node := range nodes {
		if s.host.IsFinished(node.Research()) {
			finished = append(finished, node.Research().ID())
			continue
		}
		unfinished = append(unfinished, node)
	}
	return unfinished, finished
}
