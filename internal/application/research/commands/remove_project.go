package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/research-queue/internal/application/mediator"
	researchApp "github.com/andrescamacho/research-queue/internal/application/research"
)

// RemoveProjectCommand takes a project out of the queue
type RemoveProjectCommand struct {
	ProjectID string
}

// RemoveProjectResponse reports whether anything was removed
type RemoveProjectResponse struct {
	Removed          bool
	Queue            []string
	CurrentProjectID string
}

// RemoveProjectHandler handles the RemoveProject command
type RemoveProjectHandler struct {
	session *researchApp.Session
}

// NewRemoveProjectHandler creates a new RemoveProjectHandler
func NewRemoveProjectHandler(session *researchApp.Session) *RemoveProjectHandler {
	return &RemoveProjectHandler{session: session}
}

// Handle executes the RemoveProject command
func (h *RemoveProjectHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RemoveProjectCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RemoveProjectCommand")
	}

	nodes, err := h.session.ResolveNodes(ctx, []string{cmd.ProjectID})
	if err != nil {
		return nil, err
	}

	removed := h.session.Queue().Remove(nodes[0])
	h.session.RecordQueueLength()
	return &RemoveProjectResponse{
		Removed:          removed,
		Queue:            h.session.Queue().ProjectIDs(),
		CurrentProjectID: currentProjectID(h.session),
	}, nil
}
