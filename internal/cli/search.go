package cli

import (
	"fmt"
	"strings"

	"github.com/cmdremind/cli/internal/history"
	"github.com/cmdremind/cli/internal/prompt"
	"github.com/cmdremind/cli/internal/run"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <keyword>...",
		Short: "Search reminders by keyword and run the selected command",
		Long: `Search stored commands whose keyword line matches any of the given
keywords. A single match asks for confirmation; multiple matches
present a choice. The selected command replaces the remind process.

Examples:
  remind search list
  remind search k8s pods
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cfg, dir, err := openStore(prompt.Console{})
			if err != nil {
				return err
			}

			res, err := s.Search(args)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			if res.Matched == 0 {
				cmd.Println("No commands found with any of the given keywords")
				return nil
			}
			if !res.Confirmed {
				return nil
			}

			// Record before exec: on success the process image is
			// replaced and nothing after the call runs.
			if cfg.HistoryEnabled() {
				recordExecution(cmd, dir, res.Command, strings.Join(args, " "))
			}

			return run.Exec(res.Command)
		},
	}

	return cmd
}

// recordExecution appends to the history database. History is
// best-effort and must never stop a confirmed command from running.
func recordExecution(cmd *cobra.Command, dir, command, keywords string) {
	d, err := history.Open(history.DatabasePath(dir))
	if err != nil {
		cmd.Printf("%s Warning: failed to open history: %v\n", infoStyle.Render("!"), err)
		return
	}
	defer func() { _ = d.Close() }()

	if err := history.Record(d, command, keywords); err != nil {
		cmd.Printf("%s Warning: failed to record history: %v\n", infoStyle.Render("!"), err)
	}
}
