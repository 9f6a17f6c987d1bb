package research_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	researchApp "github.com/andrescamacho/research-queue/internal/application/research"
)

func enqueueAll(t *testing.T, session *researchApp.Session, ids ...string) {
	t.Helper()
	nodes, err := session.ResolveNodes(context.Background(), ids)
	require.NoError(t, err)
	session.Queue().EnqueueRange(nodes, false)
}

func TestSimulator_RunsUntilDrained(t *testing.T) {
	// Every test node costs 100
	session, host, sink := newTestSession(t, "drain", nil, "A", "B")
	enqueueAll(t, session, "A", "B")

	report, err := researchApp.NewSimulator(session, 0, 25).Run(context.Background(), 1000)
	require.NoError(t, err)

	assert.True(t, report.Drained)
	assert.Equal(t, 8, report.Ticks)
	assert.Equal(t, []string{"A", "B"}, report.Completed)
	assert.Equal(t, 2, sink.Count())
	assert.Nil(t, host.CurrentProject())
}

func TestSimulator_StopsAtTickLimit(t *testing.T) {
	session, host, _ := newTestSession(t, "limit", nil, "A")
	enqueueAll(t, session, "A")

	report, err := researchApp.NewSimulator(session, 0, 10).Run(context.Background(), 3)
	require.NoError(t, err)

	assert.False(t, report.Drained)
	assert.Equal(t, 3, report.Ticks)
	assert.Empty(t, report.Completed)
	assert.Equal(t, 30.0, host.GetProgress(host.CurrentProject()))
}

func TestSimulator_EmptyQueueIsDrained(t *testing.T) {
	session, _, _ := newTestSession(t, "empty", nil, "A")

	report, err := researchApp.NewSimulator(session, 0, 1).Run(context.Background(), 10)
	require.NoError(t, err)

	assert.True(t, report.Drained)
	assert.Equal(t, 0, report.Ticks)
}

func TestSimulator_CancelledContextReturnsPartialReport(t *testing.T) {
	session, _, _ := newTestSession(t, "cancel", nil, "A")
	enqueueAll(t, session, "A")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := researchApp.NewSimulator(session, 0, 1).Run(ctx, 10)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Equal(t, 0, report.Ticks)
	assert.Equal(t, 1, session.Queue().Len())
}

func TestSimulator_PacedRunHonoursCancellation(t *testing.T) {
	session, _, _ := newTestSession(t, "paced", nil, "A")
	enqueueAll(t, session, "A")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := researchApp.NewSimulator(session, 1, 1).Run(ctx, 10)
	require.Error(t, err)
	assert.Equal(t, 0, report.Ticks)
}
