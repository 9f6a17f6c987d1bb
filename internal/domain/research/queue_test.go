package research_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/research-queue/internal/domain/research"
	"github.com/andrescamacho/research-queue/test/helpers"
)

func newQueue(t *testing.T) (*research.ResearchQueue, *helpers.MockHost) {
	t.Helper()
	host := helpers.NewMockHost()
	return research.NewResearchQueue(host), host
}

func TestEnqueue_ResetWhenNotAdding(t *testing.T) {
	queue, host := newQueue(t)
	a := helpers.NewTestNode(t, "A", 0, 10)
	b := helpers.NewTestNode(t, "B", 0, 10)
	queue.Enqueue(a, true)

	queue.Enqueue(b, false)

	assert.Equal(t, []string{"B"}, queue.ProjectIDs())
	assert.Equal(t, "B", host.CurrentProjectID())
}

func TestEnqueue_AppendsToTail(t *testing.T) {
	queue, host := newQueue(t)
	a := helpers.NewTestNode(t, "A", 0, 10)
	b := helpers.NewTestNode(t, "B", 0, 10)

	queue.Enqueue(a, true)
	queue.Enqueue(b, true)

	assert.Equal(t, []string{"A", "B"}, queue.ProjectIDs())
	assert.Equal(t, "A", host.CurrentProjectID())
}

func TestEnqueue_IsIdempotent(t *testing.T) {
	queue, host := newQueue(t)
	a := helpers.NewTestNode(t, "A", 0, 10)
	b := helpers.NewTestNode(t, "B", 0, 10)
	queue.Enqueue(a, true)
	queue.Enqueue(b, true)

	queue.Enqueue(a, true)

	assert.Equal(t, []string{"A", "B"}, queue.ProjectIDs())
	assert.Equal(t, "A", host.CurrentProjectID())
}

func TestEnqueue_DuplicateHeadWithoutAddKeepsSingleEntry(t *testing.T) {
	queue, host := newQueue(t)
	a := helpers.NewTestNode(t, "A", 0, 10)
	queue.Enqueue(a, true)

	queue.Enqueue(a, false)

	assert.Equal(t, []string{"A"}, queue.ProjectIDs())
	assert.Equal(t, "A", host.CurrentProjectID())
}

func TestEnqueue_NilNodeOnlySyncs(t *testing.T) {
	queue, host := newQueue(t)

	queue.Enqueue(nil, true)

	assert.Equal(t, 0, queue.Len())
	assert.Empty(t, host.CurrentProjectID())
}

func TestEnqueueRange_OrdersByDepthThenCost(t *testing.T) {
	queue, host := newQueue(t)
	d3c10 := helpers.NewTestNode(t, "deep", 3, 10)
	d1c50 := helpers.NewTestNode(t, "shallow-expensive", 1, 50)
	d1c5 := helpers.NewTestNode(t, "shallow-cheap", 1, 5)

	queue.EnqueueRange([]*research.Node{d3c10, d1c50, d1c5}, false)

	assert.Equal(t, []string{"shallow-cheap", "shallow-expensive", "deep"}, queue.ProjectIDs())
	assert.Equal(t, "shallow-cheap", host.CurrentProjectID())
}

func TestEnqueueRange_StableForEqualKeys(t *testing.T) {
	queue, _ := newQueue(t)
	first := helpers.NewTestNode(t, "first", 2, 100)
	second := helpers.NewTestNode(t, "second", 2, 100)

	queue.EnqueueRange([]*research.Node{first, second}, true)

	assert.Equal(t, []string{"first", "second"}, queue.ProjectIDs())
}

func TestEnqueueRange_AddKeepsExistingAndSkipsQueued(t *testing.T) {
	queue, host := newQueue(t)
	a := helpers.NewTestNode(t, "A", 5, 10)
	b := helpers.NewTestNode(t, "B", 1, 10)
	c := helpers.NewTestNode(t, "C", 0, 10)
	queue.Enqueue(a, true)

	queue.EnqueueRange([]*research.Node{b, a, c}, true)

	assert.Equal(t, []string{"A", "C", "B"}, queue.ProjectIDs())
	assert.Equal(t, "A", host.CurrentProjectID())
}

func TestEnqueueRange_DoesNotReorderCallerSlice(t *testing.T) {
	queue, _ := newQueue(t)
	deep := helpers.NewTestNode(t, "deep", 3, 10)
	shallow := helpers.NewTestNode(t, "shallow", 0, 10)
	input := []*research.Node{deep, shallow}

	queue.EnqueueRange(input, false)

	assert.Equal(t, []string{"deep", "shallow"}, helpers.NodeIDs(input))
}

func TestEnqueueRange_EmptyWithoutAddClearsQueue(t *testing.T) {
	queue, host := newQueue(t)
	queue.Enqueue(helpers.NewTestNode(t, "A", 0, 10), true)

	queue.EnqueueRange(nil, false)

	assert.Equal(t, 0, queue.Len())
	assert.Empty(t, host.CurrentProjectID())
}

func TestDequeue_EmptyReturnsNilAndKeepsCurrent(t *testing.T) {
	queue, host := newQueue(t)
	project := helpers.NewTestProject(t, "manual", 10)
	host.SetCurrentProject(project)

	node := queue.Dequeue()

	assert.Nil(t, node)
	assert.Same(t, project, host.CurrentProject())
}

func TestDequeue_ReturnsHeadWithoutSync(t *testing.T) {
	queue, host := newQueue(t)
	a := helpers.NewTestNode(t, "A", 0, 10)
	b := helpers.NewTestNode(t, "B", 0, 10)
	queue.EnqueueRange([]*research.Node{a, b}, false)

	node := queue.Dequeue()

	require.NotNil(t, node)
	assert.Same(t, a, node)
	assert.Equal(t, []string{"B"}, queue.ProjectIDs())
	assert.Equal(t, "A", host.CurrentProjectID(), "dequeue leaves the current project to the caller")
}

func TestRemove_MiddleNodeKeepsHead(t *testing.T) {
	queue, host := newQueue(t)
	a := helpers.NewTestNode(t, "A", 0, 10)
	b := helpers.NewTestNode(t, "B", 0, 20)
	c := helpers.NewTestNode(t, "C", 0, 30)
	queue.EnqueueRange([]*research.Node{a, b, c}, false)

	removed := queue.Remove(b)

	assert.True(t, removed)
	assert.Equal(t, []string{"A", "C"}, queue.ProjectIDs())
	assert.Equal(t, "A", host.CurrentProjectID())
}

func TestRemove_HeadPromotesNext(t *testing.T) {
	queue, host := newQueue(t)
	a := helpers.NewTestNode(t, "A", 0, 10)
	b := helpers.NewTestNode(t, "B", 0, 20)
	queue.EnqueueRange([]*research.Node{a, b}, false)

	assert.True(t, queue.Remove(a))

	assert.Equal(t, "B", host.CurrentProjectID())
}

func TestRemove_UnknownNodeReturnsFalse(t *testing.T) {
	queue, _ := newQueue(t)
	queue.Enqueue(helpers.NewTestNode(t, "A", 0, 10), true)

	assert.False(t, queue.Remove(helpers.NewTestNode(t, "A", 0, 10)), "membership is by identity")
	assert.False(t, queue.Remove(nil))
	assert.Equal(t, 1, queue.Len())
}

func TestClear_UnsetsCurrent(t *testing.T) {
	queue, host := newQueue(t)
	queue.Enqueue(helpers.NewTestNode(t, "A", 0, 10), true)

	queue.Clear()

	assert.Equal(t, 0, queue.Len())
	assert.Nil(t, queue.Head())
	assert.Nil(t, host.CurrentProject())
}

func TestPositionAndIsQueued(t *testing.T) {
	queue, _ := newQueue(t)
	a := helpers.NewTestNode(t, "A", 0, 10)
	b := helpers.NewTestNode(t, "B", 0, 20)
	missing := helpers.NewTestNode(t, "X", 0, 20)
	queue.EnqueueRange([]*research.Node{a, b}, false)

	assert.Equal(t, 1, queue.Position(a))
	assert.Equal(t, 2, queue.Position(b))
	assert.Equal(t, 0, queue.Position(missing))
	assert.True(t, queue.IsQueued(b))
	assert.False(t, queue.IsQueued(missing))
}

func TestNodes_ReturnsCopy(t *testing.T) {
	queue, _ := newQueue(t)
	queue.Enqueue(helpers.NewTestNode(t, "A", 0, 10), true)

	nodes := queue.Nodes()
	nodes[0] = nil

	require.NotNil(t, queue.Head())
	assert.Equal(t, "A", queue.Head().Research().ID())
}

func TestCurrentProjectTracksHeadAfterEveryMutation(t *testing.T) {
	queue, host := newQueue(t)
	a := helpers.NewTestNode(t, "A", 2, 10)
	b := helpers.NewTestNode(t, "B", 1, 10)
	c := helpers.NewTestNode(t, "C", 0, 10)

	assertSynced := func() {
		t.Helper()
		head := queue.Head()
		if head == nil {
			assert.Nil(t, host.CurrentProject())
			return
		}
		assert.Same(t, head.Research(), host.CurrentProject())
	}

	queue.Enqueue(a, true)
	assertSynced()
	queue.EnqueueRange([]*research.Node{b, c}, true)
	assertSynced()
	queue.Remove(a)
	assertSynced()
	queue.Enqueue(a, false)
	assertSynced()
	queue.Clear()
	assertSynced()
}
