package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath  string
	sessionFlag string
	verbose     bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "research-queue",
		Short: "Research queue - plan and run research projects for a save slot",
		Long: `Research queue keeps an ordered list of research projects per session,
feeds work into the project at the head of the queue and announces each completion.

Every invocation opens one session (save slot), runs the command and saves the
queue and research progress back to the database.

Examples:
  research-queue catalog list
  research-queue queue set electricity microelectronics
  research-queue queue add --many smithing machining
  research-queue advance --amount 250
  research-queue simulate --ticks 500
  research-queue notifications list --limit 5`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&sessionFlag, "session", "s", "",
		"Session (save slot) identifier (default from research.session_id)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewQueueCommand())
	rootCmd.AddCommand(NewAdvanceCommand())
	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewNotificationsCommand())
	rootCmd.AddCommand(NewLogsCommand())
	rootCmd.AddCommand(NewSessionCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
