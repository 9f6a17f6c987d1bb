package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	researchQueries "github.com/andrescamacho/research-queue/internal/application/research/queries"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the research project catalog",
	}

	cmd.AddCommand(newCatalogListCommand())
	cmd.AddCommand(newCatalogTreeCommand())

	return cmd
}

// newCatalogListCommand prints the catalog as a table
func newCatalogListCommand() *cobra.Command {
	var unfinished bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog projects ordered by depth",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := listCatalog(unfinished)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No projects found")
				return nil
			}

			fmt.Fprintf(out, "%-24s %-28s %-14s %5s %10s %8s %s\n",
				"ID", "LABEL", "TREE", "DEPTH", "COST", "QUEUE", "STATUS")
			fmt.Fprintln(out, "────────────────────────────────────────────────────────────────────────────────────────────────")
			for _, e := range entries {
				queued := "-"
				if e.Position > 0 {
					queued = fmt.Sprintf("#%d", e.Position)
				}
				status := fmt.Sprintf("%.0f%%", percent(e.Progress, e.Cost))
				if e.Finished {
					status = "done"
				}
				fmt.Fprintf(out, "%-24s %-28s %-14s %5d %10.0f %8s %s\n",
					truncate(e.ProjectID, 24),
					truncate(e.Label, 28),
					truncate(orNone(e.Tree), 14),
					e.Depth,
					e.Cost,
					queued,
					status,
				)
			}
			fmt.Fprintf(out, "\nTotal: %d projects\n", len(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&unfinished, "unfinished", false, "Only show projects that are not finished")

	return cmd
}

// newCatalogTreeCommand renders the catalog grouped by tree and depth
func newCatalogTreeCommand() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the catalog grouped by tree and depth",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := listCatalog(false)
			if err != nil {
				return err
			}

			formatter := NewTreeFormatter(!noColor)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(entries))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSummary(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable ANSI colors")

	return cmd
}

func listCatalog(unfinishedOnly bool) ([]researchQueries.CatalogEntryDTO, error) {
	app, err := openSession(context.Background(), sessionOptions{})
	if err != nil {
		return nil, err
	}
	defer app.Close()

	response, err := app.send(&researchQueries.ListCatalogQuery{UnfinishedOnly: unfinishedOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return response.(*researchQueries.ListCatalogResponse).Entries, nil
}

func percent(progress, cost float64) float64 {
	if cost <= 0 {
		return 100
	}
	p := progress / cost * 100
	if p > 100 {
		return 100
	}
	return p
}
