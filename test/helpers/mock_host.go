package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/research-queue/internal/domain/research"
)

// MockHost is a test double for research.Host.
// Progress is keyed by project identifier; a project is finished once
// progress reaches its cost.
type MockHost struct {
	mu sync.Mutex

	current      *research.ProjectDef
	progress     map[string]float64
	rate         float64
	fastResearch bool

	// Call tracking
	setCurrentCalls []string
	reapplyCalls    int
}

// NewMockHost creates a host with a global progress rate of 1
func NewMockHost() *MockHost {
	return &MockHost{
		progress: make(map[string]float64),
		rate:     1,
	}
}

func (h *MockHost) CurrentProject() *research.ProjectDef {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

func (h *MockHost) SetCurrentProject(project *research.ProjectDef) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = project
	id := ""
	if project != nil {
		id = project.ID()
	}
	h.setCurrentCalls = append(h.setCurrentCalls, id)
}

func (h *MockHost) GetProgress(project *research.ProjectDef) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if project == nil {
		return 0
	}
	return h.progress[project.ID()]
}

func (h *MockHost) SetProgress(project *research.ProjectDef, value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if project == nil {
		return
	}
	h.progress[project.ID()] = value
}

func (h *MockHost) GlobalProgressRate() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rate
}

func (h *MockHost) FastResearch() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fastResearch
}

func (h *MockHost) IsFinished(project *research.ProjectDef) bool {
	if project == nil {
		return false
	}
	return h.GetProgress(project) >= project.Cost()
}

func (h *MockHost) ReapplyAllEffects(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reapplyCalls++
}

// SetRate sets the global progress rate
func (h *MockHost) SetRate(rate float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rate = rate
}

// SetFastResearch toggles debug fast research
func (h *MockHost) SetFastResearch(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fastResearch = enabled
}

// CurrentProjectID returns the current project's identifier or ""
func (h *MockHost) CurrentProjectID() string {
	if current := h.CurrentProject(); current != nil {
		return current.ID()
	}
	return ""
}

// ReapplyCalls returns how many times effects were re-applied
func (h *MockHost) ReapplyCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reapplyCalls
}

// SetCurrentCalls returns every project id passed to SetCurrentProject ("" for nil)
func (h *MockHost) SetCurrentCalls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string{}, h.setCurrentCalls...)
}

var _ research.Host = (*MockHost)(nil)
