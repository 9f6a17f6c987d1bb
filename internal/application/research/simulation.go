package research

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/research-queue/internal/application/common"
)

// SimulationReport summarizes a simulation run
type SimulationReport struct {
	Ticks     int
	Completed []string
	Drained   bool
}

// Simulator drives the progress engine from a tick loop, one work unit per tick
type Simulator struct {
	session     *Session
	limiter     *rate.Limiter
	workPerTick float64
}

// NewSimulator creates a simulator. ticksPerSecond <= 0 runs unpaced.
func NewSimulator(session *Session, ticksPerSecond float64, workPerTick float64) *Simulator {
	var limiter *rate.Limiter
	if ticksPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(ticksPerSecond), 1)
	}
	return &Simulator{
		session:     session,
		limiter:     limiter,
		workPerTick: workPerTick,
	}
}

// Run advances the session for up to maxTicks ticks. It stops early when the
// queue drains or ctx is cancelled; a cancellation is returned as the error
// alongside the partial report.
func (s *Simulator) Run(ctx context.Context, maxTicks int) (*SimulationReport, error) {
	logger := common.LoggerFromContext(ctx)
	report := &SimulationReport{}

	for report.Ticks < maxTicks {
		if s.session.Queue().Len() == 0 {
			report.Drained = true
			break
		}

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return report, err
			}
		} else if err := ctx.Err(); err != nil {
			return report, err
		}

		result := s.session.Engine().AdvanceProgress(ctx, s.workPerTick)
		report.Ticks++
		if result.IsCompletion() {
			report.Completed = append(report.Completed, result.Completed.ID())
		}
	}

	if s.session.Queue().Len() == 0 {
		report.Drained = true
	}

	logger.Log(common.LevelInfo, "Simulation finished", map[string]interface{}{
		"ticks":     report.Ticks,
		"completed": len(report.Completed),
		"drained":   report.Drained,
	})
	return report, nil
}
