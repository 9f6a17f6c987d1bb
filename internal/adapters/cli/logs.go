package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/research-queue/internal/adapters/persistence"
	"github.com/andrescamacho/research-queue/internal/infrastructure/database"
)

// NewLogsCommand shows persisted session logs
func NewLogsCommand() *cobra.Command {
	var limit int
	var level string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show persisted logs of a session",
		Long: `Show the log entries persisted for a session.

Logs are only persisted while logging.persist is enabled.

Example:
  research-queue logs --level ERROR --limit 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close(db)

			sessionID, err := resolveSessionID(cfg)
			if err != nil {
				return fmt.Errorf("invalid session: %w", err)
			}

			var levelPtr *string
			if level != "" {
				upper := strings.ToUpper(level)
				levelPtr = &upper
			}

			repo := persistence.NewGormSessionLogRepository(db, nil)
			logs, err := repo.GetLogs(context.Background(), sessionID.String(), limit, levelPtr)
			if err != nil {
				return fmt.Errorf("failed to get logs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(logs) == 0 {
				fmt.Fprintln(out, "No logs found")
				return nil
			}

			for _, entry := range logs {
				line := fmt.Sprintf("[%s] %-7s %s", formatTimestamp(entry.Timestamp), entry.Level, entry.Message)
				if len(entry.Metadata) > 0 {
					if data, err := json.Marshal(entry.Metadata); err == nil {
						line += " " + string(data)
					}
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of log entries")
	cmd.Flags().StringVar(&level, "level", "", "Filter by log level (INFO, WARNING, ERROR, DEBUG)")

	return cmd
}
