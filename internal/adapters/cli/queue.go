package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	researchCommands "github.com/andrescamacho/research-queue/internal/application/research/commands"
	researchQueries "github.com/andrescamacho/research-queue/internal/application/research/queries"
)

// NewQueueCommand creates the queue command with subcommands
func NewQueueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and edit the research queue",
		Long: `Inspect and edit the research queue of a session.

The project at the head of the queue is always the host's current project.

Examples:
  research-queue queue list
  research-queue queue set electricity
  research-queue queue add microelectronics
  research-queue queue add --many smithing machining
  research-queue queue remove smithing`,
	}

	cmd.AddCommand(newQueueListCommand())
	cmd.AddCommand(newQueueSetCommand())
	cmd.AddCommand(newQueueAddCommand())
	cmd.AddCommand(newQueueRemoveCommand())
	cmd.AddCommand(newQueueClearCommand())

	return cmd
}

// newQueueListCommand prints the queue in order
func newQueueListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List queued projects in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openSession(context.Background(), sessionOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			return printQueue(cmd.OutOrStdout(), app)
		},
	}
}

// newQueueSetCommand replaces the queue
func newQueueSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <project-id>...",
		Short: "Replace the queue with the given projects",
		Long: `Replace the queue with the given projects.

A single project is queued as given. Several projects are ordered by tree depth
and then research cost, so prerequisites come first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnqueue(cmd, args, false)
		},
	}
}

// newQueueAddCommand appends to the queue
func newQueueAddCommand() *cobra.Command {
	var many bool

	cmd := &cobra.Command{
		Use:   "add <project-id>...",
		Short: "Append projects to the queue",
		Long: `Append projects to the end of the queue. Projects already queued keep
their position.

With --many the new projects are sorted by depth and cost before appending.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 && !many {
				return fmt.Errorf("adding several projects needs --many")
			}
			return runEnqueue(cmd, args, true)
		},
	}

	cmd.Flags().BoolVar(&many, "many", false, "Add several projects sorted by depth and cost")

	return cmd
}

// newQueueRemoveCommand removes one project
func newQueueRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <project-id>",
		Short: "Remove a project from the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openSession(context.Background(), sessionOptions{writable: true})
			if err != nil {
				return err
			}

			response, err := app.send(&researchCommands.RemoveProjectCommand{ProjectID: args[0]})
			if err != nil {
				return app.abort(fmt.Errorf("failed to remove project: %w", err))
			}
			result := response.(*researchCommands.RemoveProjectResponse)
			if !result.Removed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is not queued\n", args[0])
			}

			if err := printQueue(cmd.OutOrStdout(), app); err != nil {
				return app.abort(err)
			}
			return app.Close()
		},
	}
}

// newQueueClearCommand empties the queue
func newQueueClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every project from the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openSession(context.Background(), sessionOptions{writable: true})
			if err != nil {
				return err
			}

			response, err := app.send(&researchCommands.ClearQueueCommand{})
			if err != nil {
				return app.abort(fmt.Errorf("failed to clear queue: %w", err))
			}

			cleared := response.(*researchCommands.ClearQueueResponse).Cleared
			fmt.Fprintf(cmd.OutOrStdout(), "Queue cleared (%d removed)\n", cleared)
			return app.Close()
		},
	}
}

func runEnqueue(cmd *cobra.Command, projectIDs []string, add bool) error {
	app, err := openSession(context.Background(), sessionOptions{writable: true})
	if err != nil {
		return err
	}

	response, err := app.send(&researchCommands.EnqueueProjectsCommand{ProjectIDs: projectIDs, Add: add})
	if err != nil {
		return app.abort(fmt.Errorf("failed to queue projects: %w", err))
	}
	if skipped := response.(*researchCommands.EnqueueProjectsResponse).Skipped; len(skipped) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Skipped finished: %s\n", strings.Join(skipped, ", "))
	}

	if err := printQueue(cmd.OutOrStdout(), app); err != nil {
		return app.abort(err)
	}
	return app.Close()
}

func printQueue(out io.Writer, app *sessionApp) error {
	response, err := app.send(&researchQueries.GetQueueQuery{})
	if err != nil {
		return fmt.Errorf("failed to read queue: %w", err)
	}
	result := response.(*researchQueries.GetQueueResponse)

	fmt.Fprintf(out, "Session: %s\n", app.sessionID)
	if len(result.Entries) == 0 {
		fmt.Fprintln(out, "Queue is empty")
		return nil
	}

	fmt.Fprintf(out, "%-4s %-28s %-16s %6s %18s\n", "#", "PROJECT", "TREE", "DEPTH", "PROGRESS")
	fmt.Fprintln(out, "──────────────────────────────────────────────────────────────────────────────")
	for _, entry := range result.Entries {
		marker := " "
		if entry.Current {
			marker = "*"
		}
		fmt.Fprintf(out, "%s%-3d %-28s %-16s %6d %18s\n",
			marker,
			entry.Position,
			truncate(entry.Label, 28),
			truncate(orNone(entry.Tree), 16),
			entry.Depth,
			fmt.Sprintf("%.0f/%.0f", entry.Progress, entry.Cost),
		)
	}
	fmt.Fprintf(out, "\nCurrent: %s\n", orNone(result.CurrentProjectID))

	return nil
}
