package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/research-queue/internal/adapters/metrics"
	researchCommands "github.com/andrescamacho/research-queue/internal/application/research/commands"
)

// NewSimulateCommand runs the tick loop for a session
func NewSimulateCommand() *cobra.Command {
	var ticks int
	var serveMetrics bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run research ticks until the queue drains",
		Long: `Run the research tick loop. Each tick applies simulation.work_per_tick to the
current project, paced at simulation.ticks_per_second (0 runs unpaced).

The run stops after --ticks ticks, when the queue drains, or on Ctrl+C; the
queue and progress are saved in every case.

Examples:
  research-queue simulate --ticks 1000
  research-queue simulate --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := openSession(ctx, sessionOptions{writable: true, withMetrics: true})
			if err != nil {
				return err
			}

			if serveMetrics || app.cfg.Metrics.Enabled {
				server := metrics.NewServer(app.cfg.Metrics, metrics.GetRegistry())
				if err := server.Start(app.ctx); err != nil {
					return app.abort(err)
				}
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = server.Shutdown(shutdownCtx)
				}()
			}

			if ticks <= 0 {
				ticks = app.cfg.Simulation.MaxTicks
			}

			response, runErr := app.send(&researchCommands.RunSimulationCommand{Ticks: ticks})
			if response != nil {
				result := response.(*researchCommands.RunSimulationResponse)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Ticks:     %d\n", result.Ticks)
				fmt.Fprintf(out, "Completed: %d\n", len(result.Completed))
				if len(result.Completed) > 0 {
					fmt.Fprintf(out, "           %s\n", strings.Join(result.Completed, ", "))
				}
				fmt.Fprintf(out, "Drained:   %t\n", result.Drained)
			}

			if closeErr := app.Close(); closeErr != nil {
				return closeErr
			}
			if runErr != nil && ctx.Err() == nil {
				return fmt.Errorf("simulation failed: %w", runErr)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&ticks, "ticks", 0, "Maximum ticks to run (default simulation.max_ticks)")
	cmd.Flags().BoolVar(&serveMetrics, "metrics", false, "Serve Prometheus metrics while running")

	return cmd
}
