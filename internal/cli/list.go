package cli

import (
	"fmt"

	"github.com/cmdremind/cli/internal/prompt"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all stored reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, _, err := openStore(prompt.Console{})
			if err != nil {
				return err
			}

			records, err := s.All()
			if err != nil {
				return fmt.Errorf("failed to list reminders: %w", err)
			}
			if len(records) == 0 {
				cmd.Println("No reminders stored.")
				return nil
			}

			for _, r := range records {
				cmd.Printf("%s\n  %s\n", infoStyle.Render(r.Keywords), r.Command)
			}
			cmd.Printf("\n%d reminder(s)\n", len(records))
			return nil
		},
	}

	return cmd
}

func newPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the resolved reminders file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, _, err := openStore(prompt.Console{})
			if err != nil {
				return err
			}
			cmd.Println(s.Path())
			return nil
		},
	}

	return cmd
}
