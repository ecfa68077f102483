package cli

import (
	"fmt"

	"github.com/cmdremind/cli/internal/config"
	"github.com/cmdremind/cli/internal/history"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently run reminders",
		Long:  "Show the most recent commands run through remind search, newest first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.Dir()
			if err != nil {
				return err
			}

			d, err := history.Open(history.DatabasePath(dir))
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer func() { _ = d.Close() }()

			entries, err := history.Recent(d, limit)
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}
			if len(entries) == 0 {
				cmd.Println("No history recorded.")
				return nil
			}

			for _, e := range entries {
				cmd.Printf("%s  %s\n", infoStyle.Render(e.RanAt.Local().Format("2006-01-02 15:04:05")), e.Command)
				if e.Keywords != "" {
					cmd.Printf("    searched: %s\n", e.Keywords)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries")

	return cmd
}
