package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/research-queue/internal/application/common"
	"github.com/andrescamacho/research-queue/internal/application/mediator"
	researchApp "github.com/andrescamacho/research-queue/internal/application/research"
	domainResearch "github.com/andrescamacho/research-queue/internal/domain/research"
)

// EnqueueProjectsCommand queues one or more projects by identifier.
// Add=false replaces the queue instead of appending to it.
type EnqueueProjectsCommand struct {
	ProjectIDs []string
	Add        bool
}

// EnqueueProjectsResponse reports the queue after the command.
// Skipped lists requested projects that were already finished.
type EnqueueProjectsResponse struct {
	Queue            []string
	CurrentProjectID string
	Skipped          []string
}

// EnqueueProjectsHandler handles the EnqueueProjects command
type EnqueueProjectsHandler struct {
	session *researchApp.Session
}

// NewEnqueueProjectsHandler creates a new EnqueueProjectsHandler
func NewEnqueueProjectsHandler(session *researchApp.Session) *EnqueueProjectsHandler {
	return &EnqueueProjectsHandler{session: session}
}

// Handle executes the EnqueueProjects command. A single project goes through
// Enqueue so it keeps its position; a batch goes through EnqueueRange and is
// ordered by depth then cost. Finished projects are skipped, and a request
// naming only finished projects fails without touching the queue.
func (h *EnqueueProjectsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*EnqueueProjectsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *EnqueueProjectsCommand")
	}
	if len(cmd.ProjectIDs) == 0 {
		return nil, fmt.Errorf("at least one project id is required")
	}

	resolved, err := h.session.ResolveNodes(ctx, cmd.ProjectIDs)
	if err != nil {
		return nil, err
	}

	nodes, finished := h.session.SplitFinished(resolved)
	if len(nodes) == 0 {
		return nil, domainResearch.NewProjectFinishedError(finished[0])
	}

	queue := h.session.Queue()
	if len(nodes) == 1 {
		queue.Enqueue(nodes[0], cmd.Add)
	} else {
		queue.EnqueueRange(nodes, cmd.Add)
	}
	h.session.RecordQueueLength()

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Research queue updated", map[string]interface{}{
		"session_id": h.session.ID().String(),
		"added":      cmd.ProjectIDs,
		"append":     cmd.Add,
		"skipped":    finished,
		"queue_len":  queue.Len(),
	})

	return &EnqueueProjectsResponse{
		Queue:            queue.ProjectIDs(),
		CurrentProjectID: currentProjectID(h.session),
		Skipped:          finished,
	}, nil
}

func currentProjectID(session *researchApp.Session) string {
	if current := session.Host().CurrentProject(); current != nil {
		return current.ID()
	}
	return ""
}
