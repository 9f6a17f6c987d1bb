package host

import (
	"context"
	"sort"

	"github.com/andrescamacho/research-queue/internal/domain/research"
	"github.com/andrescamacho/research-queue/internal/domain/shared"
)

// InMemoryHost is the research scheduler the queue drives: it owns the
// current project pointer and accumulated progress per project.
//
// Progress is keyed by project identifier so it survives a catalog reload
// that creates new ProjectDef values. A project is finished once its
// progress reaches its cost (progress >= cost).
type InMemoryHost struct {
	catalog      research.Catalog
	current      *research.ProjectDef
	progress     map[string]float64
	rate         float64
	fastResearch bool

	unlocked     map[string]bool
	reapplyCount int
	onReapply    func(ctx context.Context, unlocked []string)
}

// Compile-time interface check
var _ research.Host = (*InMemoryHost)(nil)

// NewInMemoryHost creates a host. catalog is used to reapply unlock effects
// and may be nil in tests that do not care about them.
func NewInMemoryHost(catalog research.Catalog, progressRate float64, fastResearch bool) *InMemoryHost {
	return &InMemoryHost{
		catalog:      catalog,
		progress:     make(map[string]float64),
		rate:         progressRate,
		fastResearch: fastResearch,
		unlocked:     make(map[string]bool),
	}
}

func (h *InMemoryHost) CurrentProject() *research.ProjectDef {
	return h.current
}

func (h *InMemoryHost) SetCurrentProject(project *research.ProjectDef) {
	h.current = project
}

func (h *InMemoryHost) GetProgress(project *research.ProjectDef) float64 {
	if project == nil {
		return 0
	}
	return h.progress[project.ID()]
}

func (h *InMemoryHost) SetProgress(project *research.ProjectDef, value float64) {
	if project == nil {
		return
	}
	h.progress[project.ID()] = value
}

func (h *InMemoryHost) GlobalProgressRate() float64 {
	return h.rate
}

func (h *InMemoryHost) FastResearch() bool {
	return h.fastResearch
}

// SetFastResearch toggles the debug fast-research mode
func (h *InMemoryHost) SetFastResearch(enabled bool) {
	h.fastResearch = enabled
}

// IsFinished reports progress >= cost
func (h *InMemoryHost) IsFinished(project *research.ProjectDef) bool {
	if project == nil {
		return false
	}
	return h.GetProgress(project) >= project.Cost()
}

// ReapplyAllEffects recomputes the unlocked set from every finished project
// in the catalog. Effects are not tracked per project, so the whole set is
// rebuilt each time.
func (h *InMemoryHost) ReapplyAllEffects(ctx context.Context) {
	h.reapplyCount++

	unlocked := make(map[string]bool)
	if h.catalog != nil {
		for _, node := range h.catalog.Forest() {
			if h.IsFinished(node.Research()) {
				unlocked[node.Research().ID()] = true
			}
		}
	}
	h.unlocked = unlocked

	if h.onReapply != nil {
		h.onReapply(ctx, h.UnlockedProjects())
	}
}

// OnReapply registers a hook run after every ReapplyAllEffects
func (h *InMemoryHost) OnReapply(fn func(ctx context.Context, unlocked []string)) {
	h.onReapply = fn
}

// ReapplyCount returns how many times effects were reapplied
func (h *InMemoryHost) ReapplyCount() int {
	return h.reapplyCount
}

// UnlockedProjects returns the sorted identifiers unlocked by the last reapply
func (h *InMemoryHost) UnlockedProjects() []string {
	ids := make([]string, 0, len(h.unlocked))
	for id := range h.unlocked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ExportState captures progress and the current project for persistence
func (h *InMemoryHost) ExportState(sessionID shared.SessionID) *research.HostState {
	progress := make(map[string]float64, len(h.progress))
	for id, value := range h.progress {
		progress[id] = value
	}
	state := &research.HostState{
		SessionID: sessionID,
		Progress:  progress,
	}
	if h.current != nil {
		state.CurrentProjectID = h.current.ID()
	}
	return state
}

// ImportState replaces progress with a saved state. The saved current
// project is only restored if it still resolves in the catalog; the queue
// normally overrides it when it is rebuilt.
func (h *InMemoryHost) ImportState(state *research.HostState) {
	h.progress = make(map[string]float64, len(state.Progress))
	for id, value := range state.Progress {
		h.progress[id] = value
	}

	h.current = nil
	if state.CurrentProjectID != "" && h.catalog != nil {
		if node := h.catalog.FindByProjectID(state.CurrentProjectID); node != nil {
			h.current = node.Research()
		}
	}
}
