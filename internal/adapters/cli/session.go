package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/research-queue/internal/adapters/persistence"
	"github.com/andrescamacho/research-queue/internal/infrastructure/database"
	"github.com/andrescamacho/research-queue/pkg/utils"
)

// NewSessionCommand creates the session command with subcommands
func NewSessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage save slots",
	}

	cmd.AddCommand(newSessionNewCommand())
	cmd.AddCommand(newSessionListCommand())

	return cmd
}

func newSessionNewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new [name]",
		Short: "Generate a fresh session identifier",
		Long: `Generate a fresh session identifier to pass with --session.

Example:
  research-queue session new "Tribal start"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			fmt.Fprintln(cmd.OutOrStdout(), utils.GenerateSessionID(name))
			return nil
		},
	}
}

func newSessionListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close(db)

			sessions, err := persistence.NewGormHostStateRepository(db, nil).ListSessions(context.Background())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions found")
				return nil
			}

			fmt.Fprintf(out, "%-36s %-28s %s\n", "SESSION", "CURRENT PROJECT", "UPDATED")
			fmt.Fprintln(out, "────────────────────────────────────────────────────────────────────────────────")
			for _, s := range sessions {
				fmt.Fprintf(out, "%-36s %-28s %s\n",
					truncate(s.SessionID, 36),
					truncate(orNone(s.CurrentProjectID), 28),
					formatTimestamp(s.UpdatedAt),
				)
			}
			fmt.Fprintf(out, "\nTotal: %d sessions\n", len(sessions))
			return nil
		},
	}
}
