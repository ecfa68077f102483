package cli

import (
	"fmt"

	"github.com/cmdremind/cli/internal/prompt"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <command> <keywords>",
		Short: "Add a command to your reminders with the given keywords",
		Long: `Add a command to the reminders file under space-separated keywords.

If the exact command is already stored you are asked whether to merge
the new keywords into its existing record instead; declining leaves
the file untouched.

Examples:
  remind add "ls -la" "list files"
  remind add "kubectl get pods -A" "k8s pods all"
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, dir, err := openStore(prompt.Console{})
			if err != nil {
				return err
			}
			if err := checkMCPNotRunning(dir); err != nil {
				return err
			}

			changed, err := s.Add(args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to add reminder: %w", err)
			}
			if changed {
				cmd.Printf("%s Reminder saved to %s\n", successStyle.Render("✓"), s.Path())
			} else {
				cmd.Printf("%s Reminders left unchanged\n", infoStyle.Render("→"))
			}
			return nil
		},
	}

	return cmd
}
