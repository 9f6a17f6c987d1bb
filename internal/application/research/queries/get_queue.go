package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/research-queue/internal/application/mediator"
	researchApp "github.com/andrescamacho/research-queue/internal/application/research"
)

// GetQueueQuery lists the queue in order
type GetQueueQuery struct{}

// QueueEntryDTO is one queued project with its 1-based position
type QueueEntryDTO struct {
	Position  int
	ProjectID string
	Label     string
	Depth     int
	Cost      float64
	Progress  float64
	Tree      string
	Current   bool
}

// GetQueueResponse is the result of the query
type GetQueueResponse struct {
	Entries          []QueueEntryDTO
	CurrentProjectID string
}

// GetQueueHandler handles the GetQueue query
type GetQueueHandler struct {
	session *researchApp.Session
}

// NewGetQueueHandler creates a new GetQueueHandler
func NewGetQueueHandler(session *researchApp.Session) *GetQueueHandler {
	return &GetQueueHandler{session: session}
}

// Handle executes the GetQueue query
func (h *GetQueueHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetQueueQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetQueueQuery")
	}

	host := h.session.Host()
	current := host.CurrentProject()

	nodes := h.session.Queue().Nodes()
	entries := make([]QueueEntryDTO, 0, len(nodes))
	for i, node := range nodes {
		project := node.Research()
		entry := QueueEntryDTO{
			Position:  i + 1,
			ProjectID: project.ID(),
			Label:     project.LabelCap(),
			Depth:     node.Depth(),
			Cost:      project.Cost(),
			Progress:  host.GetProgress(project),
			Current:   project == current,
		}
		if tree := node.Tree(); tree != nil {
			entry.Tree = tree.Name
		}
		entries = append(entries, entry)
	}

	response := &GetQueueResponse{Entries: entries}
	if current != nil {
		response.CurrentProjectID = current.ID()
	}
	return response, nil
}
