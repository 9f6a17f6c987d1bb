package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	researchCommands "github.com/andrescamacho/research-queue/internal/application/research/commands"
)

// NewAdvanceCommand applies research work to the current project
func NewAdvanceCommand() *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Apply research work to the current project",
		Long: `Apply an amount of research work to the current project.

The amount is scaled by the global research speed (and the fast-research
multiplier when enabled). When the project finishes it leaves the queue, the
next project becomes current and a notification is recorded.

Example:
  research-queue advance --amount 120`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openSession(context.Background(), sessionOptions{writable: true})
			if err != nil {
				return err
			}

			response, err := app.send(&researchCommands.AdvanceProgressCommand{Amount: amount})
			if err != nil {
				return app.abort(fmt.Errorf("failed to advance research: %w", err))
			}
			result := response.(*researchCommands.AdvanceProgressResponse)

			out := cmd.OutOrStdout()
			switch {
			case result.ProjectID == "":
				fmt.Fprintln(out, "No active research project")
			case result.CompletedProjectID != "":
				fmt.Fprintf(out, "%s [%s]\n", result.NotificationTitle, result.Severity)
				fmt.Fprintf(out, "Now researching: %s\n", orNone(result.PromotedProjectID))
			default:
				fmt.Fprintf(out, "%s: +%.2f (%.2f total)\n", result.ProjectID, result.Applied, result.Progress)
			}

			return app.Close()
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Base research work to apply")
	cmd.MarkFlagRequired("amount")

	return cmd
}
