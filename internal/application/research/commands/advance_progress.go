package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/research-queue/internal/application/mediator"
	researchApp "github.com/andrescamacho/research-queue/internal/application/research"
)

// AdvanceProgressCommand applies an amount of research work to the current project
type AdvanceProgressCommand struct {
	Amount float64
}

// AdvanceProgressResponse describes the outcome of one advance
type AdvanceProgressResponse struct {
	ProjectID          string
	Applied            float64
	Progress           float64
	CompletedProjectID string
	PromotedProjectID  string
	Severity           string
	NotificationTitle  string
}

// AdvanceProgressHandler handles the AdvanceProgress command
type AdvanceProgressHandler struct {
	session *researchApp.Session
}

// NewAdvanceProgressHandler creates a new AdvanceProgressHandler
func NewAdvanceProgressHandler(session *researchApp.Session) *AdvanceProgressHandler {
	return &AdvanceProgressHandler{session: session}
}

// Handle executes the AdvanceProgress command. Advancing with no active
// project is logged by the engine and is not an error.
func (h *AdvanceProgressHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AdvanceProgressCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AdvanceProgressCommand")
	}

	projectID := currentProjectID(h.session)
	result := h.session.Engine().AdvanceProgress(ctx, cmd.Amount)

	response := &AdvanceProgressResponse{
		ProjectID: projectID,
		Applied:   result.Applied,
		Progress:  result.Progress,
	}
	if result.Completed != nil {
		response.CompletedProjectID = result.Completed.ID()
	}
	if result.Promoted != nil {
		response.PromotedProjectID = result.Promoted.ID()
	}
	if result.Notification != nil {
		response.Severity = result.Notification.Severity.String()
		response.NotificationTitle = result.Notification.Title
	}
	return response, nil
}
