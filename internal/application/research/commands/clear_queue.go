package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/research-queue/internal/application/common"
	"github.com/andrescamacho/research-queue/internal/application/mediator"
	researchApp "github.com/andrescamacho/research-queue/internal/application/research"
)

// ClearQueueCommand empties the queue and clears the current project
type ClearQueueCommand struct{}

// ClearQueueResponse reports how many projects were dropped
type ClearQueueResponse struct {
	Cleared int
}

// ClearQueueHandler handles the ClearQueue command
type ClearQueueHandler struct {
	session *researchApp.Session
}

// NewClearQueueHandler creates a new ClearQueueHandler
func NewClearQueueHandler(session *researchApp.Session) *ClearQueueHandler {
	return &ClearQueueHandler{session: session}
}

// Handle executes the ClearQueue command
func (h *ClearQueueHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ClearQueueCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ClearQueueCommand")
	}

	queue := h.session.Queue()
	cleared := queue.Len()
	queue.Clear()
	h.session.RecordQueueLength()

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Research queue cleared", map[string]interface{}{
		"session_id": h.session.ID().String(),
		"cleared":    cleared,
	})
	return &ClearQueueResponse{Cleared: cleared}, nil
}
