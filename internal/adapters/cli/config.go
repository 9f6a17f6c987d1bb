package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/research-queue/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect research queue configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (RQ_* prefix, e.g. RQ_RESEARCH_SESSION_ID)
2. Config file (config.yaml)
3. Default values

Example:
  research-queue config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.DefaultConfig()
			}

			fmt.Fprintln(out, "Research Queue Configuration")
			fmt.Fprintln(out, "============================")

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}
			fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Fprintln(out, "\nResearch:")
			fmt.Fprintf(out, "  Catalog:          %s\n", cfg.Research.CatalogPath)
			fmt.Fprintf(out, "  Session:          %s\n", cfg.Research.SessionID)
			fmt.Fprintf(out, "  Progress Rate:    %g\n", cfg.Research.ProgressRate)
			fmt.Fprintf(out, "  Fast Research:    %t (x%g)\n", cfg.Research.FastResearch, cfg.Research.FastResearchMultiplier)

			fmt.Fprintln(out, "\nSimulation:")
			fmt.Fprintf(out, "  Ticks/Second:     %g\n", cfg.Simulation.TicksPerSecond)
			fmt.Fprintf(out, "  Work/Tick:        %g\n", cfg.Simulation.WorkPerTick)
			fmt.Fprintf(out, "  Max Ticks:        %d\n", cfg.Simulation.MaxTicks)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Address:          %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)

			fmt.Fprintln(out, "\nSession:")
			fmt.Fprintf(out, "  Lock File:        %s\n", cfg.Session.LockFile)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)
			fmt.Fprintf(out, "  Persist:          %t\n", cfg.Logging.Persist)

			return nil
		},
	}
}
