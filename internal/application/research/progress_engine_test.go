package research_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/research-queue/internal/application/common"
	researchApp "github.com/andrescamacho/research-queue/internal/application/research"
	domainResearch "github.com/andrescamacho/research-queue/internal/domain/research"
	"github.com/andrescamacho/research-queue/internal/domain/shared"
	"github.com/andrescamacho/research-queue/test/helpers"
)

type recordedCompletion struct {
	projectID string
	severity  domainResearch.Severity
}

type fakeRecorder struct {
	progress    map[string]float64
	completions []recordedCompletion
	queueLength int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{progress: make(map[string]float64), queueLength: -1}
}

func (r *fakeRecorder) RecordProgress(projectID string, amount float64) {
	r.progress[projectID] += amount
}

func (r *fakeRecorder) RecordCompletion(projectID string, severity domainResearch.Severity) {
	r.completions = append(r.completions, recordedCompletion{projectID, severity})
}

func (r *fakeRecorder) RecordQueueLength(length int) {
	r.queueLength = length
}

type engineFixture struct {
	queue    *domainResearch.ResearchQueue
	host     *helpers.MockHost
	sink     *helpers.RecordingSink
	recorder *fakeRecorder
	clock    *shared.MockClock
	engine   *researchApp.ProgressEngine
	logger   *helpers.RecordingLogger
	ctx      context.Context
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	f := &engineFixture{
		host:     helpers.NewMockHost(),
		sink:     helpers.NewRecordingSink(),
		recorder: newFakeRecorder(),
		clock:    shared.NewMockClock(time.Time{}),
		logger:   helpers.NewRecordingLogger(),
	}
	f.queue = domainResearch.NewResearchQueue(f.host)
	f.engine = researchApp.NewProgressEngine(f.queue, f.host, f.sink, f.clock, f.recorder, 0)
	f.ctx = common.WithLogger(context.Background(), f.logger)
	return f
}

func TestAdvanceProgress_AccumulatesBelowCost(t *testing.T) {
	f := newEngineFixture(t)
	a := helpers.NewTestNode(t, "A", 0, 100)
	f.queue.Enqueue(a, true)

	result := f.engine.AdvanceProgress(f.ctx, 40)

	assert.Equal(t, 40.0, result.Applied)
	assert.Equal(t, 40.0, f.host.GetProgress(a.Research()))
	assert.False(t, result.IsCompletion())
	assert.Equal(t, 0, f.sink.Count())
	assert.Equal(t, []string{"A"}, f.queue.ProjectIDs())
}

func TestAdvanceProgress_CompletesAndPromotesNext(t *testing.T) {
	f := newEngineFixture(t)
	a := helpers.NewTestNode(t, "A", 0, 100)
	b := helpers.NewTestNode(t, "B", 0, 100)
	f.queue.EnqueueRange([]*domainResearch.Node{a, b}, false)
	f.host.SetProgress(a.Research(), 99)

	result := f.engine.AdvanceProgress(f.ctx, 5)

	require.True(t, result.IsCompletion())
	assert.Same(t, a.Research(), result.Completed)
	assert.Same(t, b.Research(), result.Promoted)
	assert.Equal(t, []string{"B"}, f.queue.ProjectIDs())
	assert.Equal(t, "B", f.host.CurrentProjectID())
	assert.Equal(t, 1, f.host.ReapplyCalls())

	require.Equal(t, 1, f.sink.Count())
	n, _ := f.sink.Last()
	assert.Equal(t, domainResearch.SeverityPositive, n.Severity)
	assert.Equal(t, "A", n.ProjectID)
	assert.Contains(t, n.Body, "Next in queue: B")
	assert.Equal(t, f.clock.Now(), n.Timestamp)
}

func TestAdvanceProgress_ExactCostCompletes(t *testing.T) {
	f := newEngineFixture(t)
	f.queue.Enqueue(helpers.NewTestNode(t, "A", 0, 50), true)

	result := f.engine.AdvanceProgress(f.ctx, 50)

	assert.True(t, result.IsCompletion())
}

func TestAdvanceProgress_LastProjectEmitsNegativeNotification(t *testing.T) {
	f := newEngineFixture(t)
	f.queue.Enqueue(helpers.NewTestNode(t, "A", 0, 10), true)

	result := f.engine.AdvanceProgress(f.ctx, 10)

	require.True(t, result.IsCompletion())
	assert.Nil(t, result.Promoted)
	assert.Nil(t, f.host.CurrentProject())
	assert.Equal(t, 0, f.queue.Len())

	n, ok := f.sink.Last()
	require.True(t, ok)
	assert.Equal(t, domainResearch.SeverityNegative, n.Severity)
	assert.Contains(t, n.Body, "Next in queue: none")
}

func TestAdvanceProgress_ZeroAmountNeverCompletes(t *testing.T) {
	f := newEngineFixture(t)
	a := helpers.NewTestNode(t, "A", 0, 10)
	f.queue.Enqueue(a, true)
	f.host.SetProgress(a.Research(), 10)

	for _, amount := range []float64{0, -5} {
		result := f.engine.AdvanceProgress(f.ctx, amount)
		assert.False(t, result.IsCompletion())
		assert.Equal(t, 0.0, result.Applied)
	}

	assert.Equal(t, 10.0, f.host.GetProgress(a.Research()))
	assert.Equal(t, 0, f.sink.Count())
	assert.Equal(t, []string{"A"}, f.queue.ProjectIDs())
}

func TestAdvanceProgress_NoCurrentProjectLogsError(t *testing.T) {
	f := newEngineFixture(t)

	result := f.engine.AdvanceProgress(f.ctx, 10)

	assert.False(t, result.IsCompletion())
	assert.Equal(t, 0.0, result.Applied)
	assert.Equal(t, 0, f.sink.Count())

	errs := f.logger.ByLevel(common.LevelError)
	require.Len(t, errs, 1)
	assert.Equal(t, domainResearch.ErrNoActiveProject.Error(), errs[0].Message)
}

func TestAdvanceProgress_AppliesRateAndFastResearch(t *testing.T) {
	f := newEngineFixture(t)
	a := helpers.NewTestNode(t, "A", 0, 1_000_000)
	f.queue.Enqueue(a, true)
	f.host.SetRate(2)

	f.engine.AdvanceProgress(f.ctx, 3)
	assert.Equal(t, 6.0, f.host.GetProgress(a.Research()))

	f.host.SetFastResearch(true)
	result := f.engine.AdvanceProgress(f.ctx, 1)

	assert.Equal(t, 2.0*researchApp.DefaultFastResearchMultiplier, result.Applied)
	assert.Equal(t, 6.0+1000.0, f.host.GetProgress(a.Research()))
}

func TestAdvanceProgress_CurrentOutsideQueueIsRemovedWherePresent(t *testing.T) {
	f := newEngineFixture(t)
	a := helpers.NewTestNode(t, "A", 0, 100)
	b := helpers.NewTestNode(t, "B", 1, 10)
	f.queue.EnqueueRange([]*domainResearch.Node{a, b}, false)
	// The host switched projects behind the queue's back
	f.host.SetCurrentProject(b.Research())

	result := f.engine.AdvanceProgress(f.ctx, 10)

	require.True(t, result.IsCompletion())
	assert.Same(t, b.Research(), result.Completed)
	assert.Equal(t, []string{"A"}, f.queue.ProjectIDs())
	assert.Equal(t, "A", f.host.CurrentProjectID())
}

func TestAdvanceProgress_RecordsMetrics(t *testing.T) {
	f := newEngineFixture(t)
	f.queue.EnqueueRange([]*domainResearch.Node{
		helpers.NewTestNode(t, "A", 0, 10),
		helpers.NewTestNode(t, "B", 1, 10),
	}, false)

	f.engine.AdvanceProgress(f.ctx, 4)
	f.engine.AdvanceProgress(f.ctx, 6)

	assert.Equal(t, 10.0, f.recorder.progress["A"])
	require.Len(t, f.recorder.completions, 1)
	assert.Equal(t, recordedCompletion{"A", domainResearch.SeverityPositive}, f.recorder.completions[0])
	assert.Equal(t, 1, f.recorder.queueLength)
}

func TestAdvanceProgress_CompletionNotifiesExactlyOnce(t *testing.T) {
	f := newEngineFixture(t)
	f.queue.EnqueueRange([]*domainResearch.Node{
		helpers.NewTestNode(t, "A", 0, 10),
		helpers.NewTestNode(t, "B", 1, 1000),
	}, false)

	f.engine.AdvanceProgress(f.ctx, 25)
	f.engine.AdvanceProgress(f.ctx, 1)

	assert.Equal(t, 1, f.sink.Count())
	assert.Equal(t, 1.0, f.host.GetProgress(f.host.CurrentProject()), "overflow is not carried into the next project")
}

func TestAdvanceProgress_AlreadyFinishedProjectIsDroppedWithoutCompletion(t *testing.T) {
	f := newEngineFixture(t)
	a := helpers.NewTestNode(t, "A", 0, 10)
	b := helpers.NewTestNode(t, "B", 1, 20)
	f.queue.EnqueueRange([]*domainResearch.Node{a, b}, false)
	f.host.SetProgress(a.Research(), 10)

	result := f.engine.AdvanceProgress(f.ctx, 5)

	assert.False(t, result.IsCompletion())
	assert.Zero(t, result.Applied)
	assert.Equal(t, []string{"B"}, f.queue.ProjectIDs())
	assert.Equal(t, "B", f.host.CurrentProjectID())
	assert.Equal(t, 10.0, f.host.GetProgress(a.Research()))
	assert.Zero(t, f.host.GetProgress(b.Research()))
	assert.Equal(t, 0, f.sink.Count())
	assert.Equal(t, 0, f.host.ReapplyCalls())
	assert.Empty(t, f.recorder.completions)
	assert.Equal(t, 1, f.recorder.queueLength)
	assert.Len(t, f.logger.ByLevel(common.LevelWarning), 1)
}

func TestAdvanceProgress_AlreadyFinishedLastProjectLeavesNoCurrent(t *testing.T) {
	f := newEngineFixture(t)
	a := helpers.NewTestNode(t, "A", 0, 10)
	f.queue.Enqueue(a, true)
	f.host.SetProgress(a.Research(), 10)

	result := f.engine.AdvanceProgress(f.ctx, 1)

	assert.False(t, result.IsCompletion())
	assert.Equal(t, 0, f.queue.Len())
	assert.Nil(t, f.host.CurrentProject())
	assert.Equal(t, 0, f.sink.Count())
}

func TestNewProgressEngine_NilSinkAndClock(t *testing.T) {
	host := helpers.NewMockHost()
	queue := domainResearch.NewResearchQueue(host)
	engine := researchApp.NewProgressEngine(queue, host, nil, nil, nil, 0)
	queue.Enqueue(helpers.NewTestNode(t, "A", 0, 1), true)

	result := engine.AdvanceProgress(context.Background(), 1)

	require.True(t, result.IsCompletion())
	require.NotNil(t, result.Notification)
	assert.False(t, result.Notification.Timestamp.IsZero())
}
