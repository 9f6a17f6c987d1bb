package research

import (
	"context"

	"github.com/andrescamacho/research-queue/internal/application/common"
	domainResearch "github.com/andrescamacho/research-queue/internal/domain/research"
	"github.com/andrescamacho/research-queue/internal/domain/shared"
)

// DefaultFastResearchMultiplier boosts progress while the host's fast-research debug mode is on
const DefaultFastResearchMultiplier = 500.0

// ProgressRecorder receives progress and completion events for metrics.
// Implementations must not block.
type ProgressRecorder interface {
	RecordProgress(projectID string, amount float64)
	RecordCompletion(projectID string, severity domainResearch.Severity)
	RecordQueueLength(length int)
}

// AdvanceResult describes what one AdvanceProgress call did.
// A zero result means nothing was applied.
type AdvanceResult struct {
	Applied      float64
	Progress     float64
	Completed    *domainResearch.ProjectDef
	Promoted     *domainResearch.ProjectDef
	Notification *domainResearch.Notification
}

// IsCompletion reports whether the call finished the current project
func (r AdvanceResult) IsCompletion() bool {
	return r.Completed != nil
}

// ProgressEngine applies work to the host's current project and promotes
// the next queued project when it finishes.
//
// Completion uses the host's own predicate. With the in-memory host that is
// progress >= cost, so a project whose cost is exactly reached completes.
// Non-positive amounts are ignored entirely: they never add progress and
// never trigger completion, even when progress already sits at the threshold.
type ProgressEngine struct {
	queue          *domainResearch.ResearchQueue
	host           domainResearch.Host
	sink           domainResearch.NotificationSink
	clock          shared.Clock
	recorder       ProgressRecorder
	fastMultiplier float64
}

// NewProgressEngine creates a progress engine.
// If clock is nil, uses RealClock. A multiplier <= 0 falls back to DefaultFastResearchMultiplier.
func NewProgressEngine(
	queue *domainResearch.ResearchQueue,
	host domainResearch.Host,
	sink domainResearch.NotificationSink,
	clock shared.Clock,
	recorder ProgressRecorder,
	fastMultiplier float64,
) *ProgressEngine {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if sink == nil {
		sink = discardSink{}
	}
	if fastMultiplier <= 0 {
		fastMultiplier = DefaultFastResearchMultiplier
	}
	return &ProgressEngine{
		queue:          queue,
		host:           host,
		sink:           sink,
		clock:          clock,
		recorder:       recorder,
		fastMultiplier: fastMultiplier,
	}
}

// AdvanceProgress adds amount of work to the current project
func (e *ProgressEngine) AdvanceProgress(ctx context.Context, amount float64) AdvanceResult {
	logger := common.LoggerFromContext(ctx)

	current := e.host.CurrentProject()
	if current == nil {
		logger.Log(common.LevelError, domainResearch.ErrNoActiveProject.Error(), map[string]interface{}{
			"amount": amount,
		})
		return AdvanceResult{}
	}

	if amount <= 0 {
		return AdvanceResult{Progress: e.host.GetProgress(current)}
	}

	// A project finished before this call was queued again; drop it without
	// repeating the completion.
	if e.host.IsFinished(current) {
		e.removeFinished(current)
		e.queue.SyncCurrentProject()
		e.recordQueueLength()
		logger.Log(common.LevelWarning, "Dropped already finished project from the queue", map[string]interface{}{
			"project_id": current.ID(),
			"queue_len":  e.queue.Len(),
		})
		return AdvanceResult{Progress: e.host.GetProgress(current)}
	}

	scaled := amount * e.host.GlobalProgressRate()
	if e.host.FastResearch() {
		scaled *= e.fastMultiplier
	}

	progress := e.host.GetProgress(current) + scaled
	e.host.SetProgress(current, progress)
	if e.recorder != nil {
		e.recorder.RecordProgress(current.ID(), scaled)
	}

	result := AdvanceResult{Applied: scaled, Progress: progress}
	if !e.host.IsFinished(current) {
		return result
	}

	e.removeFinished(current)

	var next *domainResearch.ProjectDef
	if head := e.queue.Head(); head != nil {
		next = head.Research()
	}
	e.host.SetCurrentProject(next)

	notification := domainResearch.NewCompletionNotification(current, next, e.clock.Now())
	e.sink.Notify(ctx, notification)

	e.host.ReapplyAllEffects(ctx)

	if e.recorder != nil {
		e.recorder.RecordCompletion(current.ID(), notification.Severity)
	}
	e.recordQueueLength()

	logger.Log(common.LevelInfo, "Research project finished", map[string]interface{}{
		"project_id": current.ID(),
		"progress":   progress,
		"next":       nextLabel(next),
		"queue_len":  e.queue.Len(),
	})

	result.Completed = current
	result.Promoted = next
	result.Notification = &notification
	return result
}

// removeFinished takes the finished project out of the queue. Normally it is
// the head; a current project set outside the queue is removed wherever it sits.
func (e *ProgressEngine) removeFinished(finished *domainResearch.ProjectDef) {
	if head := e.queue.Head(); head != nil && head.Research() == finished {
		e.queue.Dequeue()
		return
	}
	for _, node := range e.queue.Nodes() {
		if node.Research() == finished {
			e.queue.Remove(node)
			return
		}
	}
}

func (e *ProgressEngine) recordQueueLength() {
	if e.recorder != nil {
		e.recorder.RecordQueueLength(e.queue.Len())
	}
}

func nextLabel(next *domainResearch.ProjectDef) string {
	if next == nil {
		return "none"
	}
	return next.LabelCap()
}

// discardSink drops notifications when no sink is configured
type discardSink struct{}

func (discardSink) Notify(ctx context.Context, notification domainResearch.Notification) {}
