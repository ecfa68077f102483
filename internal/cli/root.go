package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/cmdremind/cli/internal/config"
	"github.com/cmdremind/cli/internal/prompt"
	"github.com/cmdremind/cli/internal/selfupdate"
	"github.com/cmdremind/cli/internal/serverstate"
	"github.com/cmdremind/cli/internal/store"
	"github.com/spf13/cobra"
)

// Version is the version of the remind CLI.
// Update this constant manually on every release.
const Version = "v0.1.0"

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

// NewRootCmd creates the root command for remind
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "remind",
		Short:   "Store shell commands behind keywords and run them later",
		Long:    "Remind keeps shell commands in a flat reminders file, tagged with keywords, so you can search for and re-run them later.",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip self-update for the mcp command (daemon-like usage)
			if cmd.Name() == "mcp" {
				return nil
			}

			// Check and update (best-effort, never fails the command)
			_ = selfupdate.CheckAndUpdate(Version)
			return nil
		},
	}

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newPathCmd())
	rootCmd.AddCommand(newMcpCmd())

	return rootCmd
}

// openStore resolves the configuration directory, loads the config,
// and returns the reminder store wired to the given prompter.
func openStore(p prompt.Prompter) (*store.Store, *config.Config, string, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, nil, "", err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	return store.New(cfg.RemindersPathIn(dir), p), cfg, dir, nil
}

// checkMCPNotRunning refuses interactive mutations while an MCP server
// is serving the store from its in-memory snapshot.
func checkMCPNotRunning(dir string) error {
	running, state, err := serverstate.IsRunning(dir)
	if err != nil {
		return fmt.Errorf("failed to check MCP state: %w", err)
	}
	if running {
		return fmt.Errorf("reminders are currently served by an MCP server (PID: %d, started: %s)\n\nStop the server before editing reminders interactively, then try again",
			state.PID, state.StartedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
