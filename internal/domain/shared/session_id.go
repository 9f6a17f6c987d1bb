package shared

import (
	"fmt"
	"strings"
)

// SessionID identifies one simulation session (one save slot).
// Queue snapshots and host progress are keyed by it.
type SessionID struct {
	value string
}

// NewSessionID creates a new SessionID value object
func NewSessionID(id string) (SessionID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return SessionID{}, fmt.Errorf("session_id must not be empty")
	}
	if len(id) > 64 {
		return SessionID{}, fmt.Errorf("session_id must be at most 64 characters, got %d", len(id))
	}
	return SessionID{value: id}, nil
}

// MustNewSessionID creates a new SessionID value object, panicking if invalid
// Use this only when you're certain the ID is valid (e.g., from database)
func MustNewSessionID(id string) SessionID {
	sessionID, err := NewSessionID(id)
	if err != nil {
		panic(err)
	}
	return sessionID
}

// String returns the raw identifier
func (s SessionID) String() string {
	return s.value
}

// Equals checks if two SessionIDs are equal
func (s SessionID) Equals(other SessionID) bool {
	return s.value == other.value
}

// IsZero checks if the SessionID is the zero value (uninitialized)
func (s SessionID) IsZero() bool {
	return s.value == ""
}
