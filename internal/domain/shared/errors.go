package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Session errors

type SessionError struct {
	*DomainError
	SessionID string
}

func NewSessionError(message, sessionID string) *SessionError {
	return &SessionError{
		DomainError: &DomainError{Message: message},
		SessionID:   sessionID,
	}
}

type SessionLockedError struct {
	*SessionError
	HolderPID int
}

func NewSessionLockedError(sessionID string, holderPID int) *SessionLockedError {
	return &SessionLockedError{
		SessionError: NewSessionError(
			fmt.Sprintf("session %s is locked by process %d", sessionID, holderPID),
			sessionID,
		),
		HolderPID: holderPID,
	}
}
