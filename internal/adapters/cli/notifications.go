package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	researchQueries "github.com/andrescamacho/research-queue/internal/application/research/queries"
)

// NewNotificationsCommand creates the notifications command with subcommands
func NewNotificationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show research completion notifications",
	}

	cmd.AddCommand(newNotificationsListCommand())

	return cmd
}

func newNotificationsListCommand() *cobra.Command {
	var limit int
	var full bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openSession(context.Background(), sessionOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			response, err := app.send(&researchQueries.ListNotificationsQuery{
				SessionID: app.sessionID.String(),
				Limit:     limit,
			})
			if err != nil {
				return fmt.Errorf("failed to list notifications: %w", err)
			}
			notifications := response.(*researchQueries.ListNotificationsResponse).Notifications

			out := cmd.OutOrStdout()
			if len(notifications) == 0 {
				fmt.Fprintln(out, "No notifications found")
				return nil
			}

			for _, n := range notifications {
				fmt.Fprintf(out, "[%s] %-8s %s\n", formatTimestamp(n.Timestamp), n.Severity, n.Title)
				if full {
					for _, line := range strings.Split(n.Body, "\n") {
						fmt.Fprintf(out, "    %s\n", line)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of notifications")
	cmd.Flags().BoolVar(&full, "full", false, "Print the notification body")

	return cmd
}
