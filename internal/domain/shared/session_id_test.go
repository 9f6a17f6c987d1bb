package shared

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionID(t *testing.T) {
	id, err := NewSessionID("  colony-1 ")
	require.NoError(t, err)
	assert.Equal(t, "colony-1", id.String())
	assert.False(t, id.IsZero())
	assert.True(t, id.Equals(MustNewSessionID("colony-1")))
}

func TestNewSessionID_Invalid(t *testing.T) {
	_, err := NewSessionID("   ")
	assert.Error(t, err)

	_, err = NewSessionID(strings.Repeat("x", 65))
	assert.Error(t, err)

	assert.Panics(t, func() { MustNewSessionID("") })
	assert.True(t, SessionID{}.IsZero())
}

func TestMockClock_Advance(t *testing.T) {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)
	clock.Advance(90 * time.Minute)

	assert.Equal(t, start.Add(90*time.Minute), clock.Now())
	assert.False(t, NewMockClock(time.Time{}).Now().IsZero())
}

func TestSessionLockedError(t *testing.T) {
	err := NewSessionLockedError("colony-1", 4242)

	assert.Equal(t, "session colony-1 is locked by process 4242", err.Error())
	assert.Equal(t, "colony-1", err.SessionID)
	assert.Equal(t, 4242, err.HolderPID)
}
