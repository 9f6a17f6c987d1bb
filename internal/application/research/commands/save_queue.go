package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/research-queue/internal/application/mediator"
	researchApp "github.com/andrescamacho/research-queue/internal/application/research"
)

// SaveQueueCommand persists the session's queue snapshot
type SaveQueueCommand struct{}

// SaveQueueResponse lists the identifiers that were saved
type SaveQueueResponse struct {
	ProjectIDs []string
}

// SaveQueueHandler handles the SaveQueue command
type SaveQueueHandler struct {
	session *researchApp.Session
}

// NewSaveQueueHandler creates a new SaveQueueHandler
func NewSaveQueueHandler(session *researchApp.Session) *SaveQueueHandler {
	return &SaveQueueHandler{session: session}
}

// Handle executes the SaveQueue command
func (h *SaveQueueHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*SaveQueueCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *SaveQueueCommand")
	}

	snapshot, err := h.session.Save(ctx)
	if err != nil {
		return nil, err
	}
	return &SaveQueueResponse{ProjectIDs: snapshot.ProjectIDs}, nil
}
