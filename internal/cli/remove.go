package cli

import (
	"fmt"
	"strings"

	"github.com/cmdremind/cli/internal/prompt"
	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <keyword>...",
		Short: "Remove reminders matching any of the given keywords",
		Long: `Remove stored commands whose keyword line matches any of the given
keywords. You are asked per matching command before it is deleted.

Examples:
  remind remove list
  remind remove k8s pods
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, dir, err := openStore(prompt.Console{})
			if err != nil {
				return err
			}
			if err := checkMCPNotRunning(dir); err != nil {
				return err
			}

			removed, err := s.Remove(strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("failed to remove reminders: %w", err)
			}
			if removed == 0 {
				cmd.Printf("%s No reminders removed\n", infoStyle.Render("→"))
			} else {
				cmd.Printf("%s Removed %d reminder(s)\n", successStyle.Render("✓"), removed)
			}
			return nil
		},
	}

	return cmd
}
