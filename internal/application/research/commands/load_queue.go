package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/research-queue/internal/application/common"
	"github.com/andrescamacho/research-queue/internal/application/mediator"
	researchApp "github.com/andrescamacho/research-queue/internal/application/research"
)

// LoadQueueCommand rebuilds the session's queue from its saved snapshot
type LoadQueueCommand struct{}

// LoadQueueResponse reports restored and skipped identifiers
type LoadQueueResponse struct {
	Restored         []string
	Skipped          []string
	CurrentProjectID string
}

// LoadQueueHandler handles the LoadQueue command
type LoadQueueHandler struct {
	session *researchApp.Session
}

// NewLoadQueueHandler creates a new LoadQueueHandler
func NewLoadQueueHandler(session *researchApp.Session) *LoadQueueHandler {
	return &LoadQueueHandler{session: session}
}

// Handle executes the LoadQueue command
func (h *LoadQueueHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*LoadQueueCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *LoadQueueCommand")
	}

	result, err := h.session.Load(ctx)
	if err != nil {
		return nil, err
	}

	if len(result.Skipped) > 0 {
		common.LoggerFromContext(ctx).Log(common.LevelInfo, "Saved projects no longer in catalog", map[string]interface{}{
			"session_id": h.session.ID().String(),
			"skipped":    result.Skipped,
		})
	}

	return &LoadQueueResponse{
		Restored:         result.Restored,
		Skipped:          result.Skipped,
		CurrentProjectID: currentProjectID(h.session),
	}, nil
}
