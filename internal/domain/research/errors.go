package research

import (
	"errors"
	"fmt"
)

// ErrNoActiveProject is reported when progress is made while the host has no
// current project. It is diagnostic only and never returned to callers.
var ErrNoActiveProject = errors.New("researched without having an active project")

// ProjectNotFoundError indicates an identifier that matches no catalog node
type ProjectNotFoundError struct {
	ProjectID string
}

func (e *ProjectNotFoundError) Error() string {
	return fmt.Sprintf("research project not found: %s", e.ProjectID)
}

// NewProjectNotFoundError creates a ProjectNotFoundError
func NewProjectNotFoundError(projectID string) *ProjectNotFoundError {
	return &ProjectNotFoundError{ProjectID: projectID}
}

// CatalogError indicates the catalog could not be built
type CatalogError struct {
	Source  string
	Message string
	Err     error
}

func (e *CatalogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog %s: %s: %v", e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("catalog %s: %s", e.Source, e.Message)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewCatalogError creates a CatalogError
func NewCatalogError(source, message string, err error) *CatalogError {
	return &CatalogError{Source: source, Message: message, Err: err}
}

// ProjectFinishedError indicates a request to queue a project that is already finished
type ProjectFinishedError struct {
	ProjectID string
}

func (e *ProjectFinishedError) Error() string {
	return fmt.Sprintf("research project already finished: %s", e.ProjectID)
}

// NewProjectFinishedError creates a ProjectFinishedError
func NewProjectFinishedError(projectID string) *ProjectFinishedError {
	return &ProjectFinishedError{ProjectID: projectID}
}
