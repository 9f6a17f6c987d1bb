package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/research-queue/internal/application/mediator"
	researchApp "github.com/andrescamacho/research-queue/internal/application/research"
)

// RunSimulationCommand drives the tick loop for a number of ticks
type RunSimulationCommand struct {
	Ticks int
}

// RunSimulationResponse summarizes the run
type RunSimulationResponse struct {
	Ticks     int
	Completed []string
	Drained   bool
}

// RunSimulationHandler handles the RunSimulation command
type RunSimulationHandler struct {
	simulator *researchApp.Simulator
}

// NewRunSimulationHandler creates a new RunSimulationHandler
func NewRunSimulationHandler(simulator *researchApp.Simulator) *RunSimulationHandler {
	return &RunSimulationHandler{simulator: simulator}
}

// Handle executes the RunSimulation command
func (h *RunSimulationHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RunSimulationCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunSimulationCommand")
	}
	if cmd.Ticks <= 0 {
		return nil, fmt.Errorf("ticks must be positive, got %d", cmd.Ticks)
	}

	report, err := h.simulator.Run(ctx, cmd.Ticks)
	response := &RunSimulationResponse{
		Ticks:     report.Ticks,
		Completed: report.Completed,
		Drained:   report.Drained,
	}
	if err != nil {
		// The partial report is still returned so callers can persist and show it
		return response, fmt.Errorf("simulation interrupted after %d ticks: %w", report.Ticks, err)
	}

	return response, nil
}
