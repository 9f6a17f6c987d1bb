package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/research-queue/internal/application/mediator"
	researchApp "github.com/andrescamacho/research-queue/internal/application/research"
)

// ListCatalogQuery lists every catalog node, ordered by depth then identifier
type ListCatalogQuery struct {
	UnfinishedOnly bool
}

// CatalogEntryDTO is one catalog node with its queue status
type CatalogEntryDTO struct {
	ProjectID string
	Label     string
	Depth     int
	Cost      float64
	Progress  float64
	Finished  bool
	Position  int
	Tree      string
}

// ListCatalogResponse is the result of the query
type ListCatalogResponse struct {
	Entries []CatalogEntryDTO
}

// ListCatalogHandler handles the ListCatalog query
type ListCatalogHandler struct {
	session *researchApp.Session
}

// NewListCatalogHandler creates a new ListCatalogHandler
func NewListCatalogHandler(session *researchApp.Session) *ListCatalogHandler {
	return &ListCatalogHandler{session: session}
}

// Handle executes the ListCatalog query
func (h *ListCatalogHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListCatalogQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListCatalogQuery")
	}

	catalog := h.session.Catalog()
	if !catalog.Initialized() {
		if err := catalog.Initialize(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize catalog: %w", err)
		}
	}

	host := h.session.Host()
	queue := h.session.Queue()

	entries := make([]CatalogEntryDTO, 0, len(catalog.Forest()))
	for _, node := range catalog.Forest() {
		project := node.Research()
		finished := host.IsFinished(project)
		if query.UnfinishedOnly && finished {
			continue
		}
		entry := CatalogEntryDTO{
			ProjectID: project.ID(),
			Label:     project.LabelCap(),
			Depth:     node.Depth(),
			Cost:      project.Cost(),
			Progress:  host.GetProgress(project),
			Finished:  finished,
			Position:  queue.Position(node),
		}
		if tree := node.Tree(); tree != nil {
			entry.Tree = tree.Name
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Depth != entries[j].Depth {
			return entries[i].Depth < entries[j].Depth
		}
		return entries[i].ProjectID < entries[j].ProjectID
	})

	return &ListCatalogResponse{Entries: entries}, nil
}
