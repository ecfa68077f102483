package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cmdremind/cli/internal/config"
	"github.com/cmdremind/cli/internal/serverstate"
	"github.com/cmdremind/cli/internal/store"
	"github.com/fsnotify/fsnotify"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

// SearchArgs is the input for the remind.search MCP tool.
type SearchArgs struct {
	Keywords []string `json:"keywords,omitempty"`
}

// AddArgs is the input for the remind.add MCP tool.
type AddArgs struct {
	Command  string `json:"command,omitempty"`
	Keywords string `json:"keywords,omitempty"`
}

// autoApprove satisfies prompt.Prompter for MCP adds: there is no
// console on the other side of a stdio transport, so keyword merges
// onto an existing command are always accepted.
type autoApprove struct{}

func (autoApprove) Confirm(string, string) (bool, error) { return true, nil }
func (autoApprove) Choose(string, []string) (int, error) { return 0, nil }

// snapshot caches the store's line sequence for the read tools; the
// file watcher refreshes it when the reminders file changes on disk.
type snapshot struct {
	mu    sync.RWMutex
	lines []string
}

func (sn *snapshot) reload(s *store.Store) error {
	lines, err := s.Lines()
	if err != nil {
		return err
	}
	sn.mu.Lock()
	sn.lines = lines
	sn.mu.Unlock()
	return nil
}

func (sn *snapshot) search(keywords []string) ([]string, error) {
	sn.mu.RLock()
	defer sn.mu.RUnlock()

	matches, err := store.FindMatches(sn.lines, keywords)
	if err != nil {
		return nil, err
	}
	commands := make([]string, len(matches))
	for i, idx := range matches {
		commands[i] = sn.lines[idx]
	}
	return commands, nil
}

func (sn *snapshot) records() ([]store.Record, error) {
	sn.mu.RLock()
	defer sn.mu.RUnlock()
	return store.PairRecords(sn.lines)
}

func newMcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server",
		Long:  "Start a Model Context Protocol server exposing reminder search, listing, and adding over stdio.",
		RunE:  runMcp,
	}

	return cmd
}

func runMcp(cmd *cobra.Command, args []string) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}

	// Redirect all logging to <config dir>/mcp.log so nothing leaks
	// into the stdio JSON-RPC transport.
	if err := initMCPLog(dir); err != nil {
		return fmt.Errorf("failed to initialize mcp log: %w", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st := store.New(cfg.RemindersPathIn(dir), autoApprove{})
	sn := &snapshot{}
	if err := sn.reload(st); err != nil {
		return fmt.Errorf("failed to read reminders: %w", err)
	}

	if err := serverstate.Create(dir); err != nil {
		return fmt.Errorf("failed to write server state: %w", err)
	}
	defer func() { _ = serverstate.Remove(dir) }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go watchStore(ctx, st, sn)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "remind",
		Version: Version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remind.list",
		Description: "List all stored reminders with their keywords",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, any, error) {
		records, err := sn.records()
		if err != nil {
			return toolError(err), nil, nil
		}

		var b strings.Builder
		for _, r := range records {
			fmt.Fprintf(&b, "%s\n%s\n", r.Keywords, r.Command)
		}
		if b.Len() == 0 {
			b.WriteString("No reminders stored.")
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: b.String()},
			},
		}, map[string]interface{}{"reminders": records}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remind.search",
		Description: "Find stored commands whose keyword line contains any of the given keywords (substring match). Returns the matching command lines in store order.",
		InputSchema: mustSchema(SearchArgs{}),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
		if len(args.Keywords) == 0 {
			return toolErrorText("provide at least one keyword"), nil, nil
		}

		commands, err := sn.search(args.Keywords)
		if err != nil {
			return toolError(err), nil, nil
		}

		text := "No commands found with any of the given keywords"
		if len(commands) > 0 {
			text = strings.Join(commands, "\n")
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: text},
			},
		}, map[string]interface{}{"commands": commands}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remind.add",
		Description: "Store a command under space-separated keywords. If the exact command already has a record, the keywords are merged into it.",
		InputSchema: mustSchema(AddArgs{}),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AddArgs) (*mcp.CallToolResult, any, error) {
		if _, err := st.Add(args.Command, args.Keywords); err != nil {
			return toolError(err), nil, nil
		}
		if err := sn.reload(st); err != nil {
			log.Printf("failed to reload snapshot after add: %v", err)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Stored %q under keywords %q", args.Command, args.Keywords)},
			},
		}, nil, nil
	})

	// Run server over stdio
	return server.Run(context.Background(), &mcp.StdioTransport{})
}

// watchStore watches the reminders file and refreshes the snapshot
// when it changes on disk.
func watchStore(ctx context.Context, st *store.Store, sn *snapshot) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("fsnotify: failed to create watcher: %v", err)
		return
	}
	defer watcher.Close()

	// Watch the directory: editors and the CLI replace the file by
	// truncate/rewrite, and a watch on the file itself would be lost.
	if err := watcher.Add(filepath.Dir(st.Path())); err != nil {
		log.Printf("fsnotify: failed to watch %s: %v", filepath.Dir(st.Path()), err)
		return
	}

	log.Printf("watcher started on %s", st.Path())

	var mu sync.Mutex
	var timer *time.Timer

	flush := func() {
		if err := sn.reload(st); err != nil {
			log.Printf("failed to reload reminders: %v", err)
			return
		}
		log.Printf("reminders reloaded")
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Name != st.Path() {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(200*time.Millisecond, flush)
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

const mcpLogFileName = "mcp.log"

// initMCPLog opens (or creates) <config dir>/mcp.log and redirects the
// standard log package output there. The file is truncated on each
// startup so it never grows unbounded between runs.
func initMCPLog(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	logPath := filepath.Join(dir, mcpLogFileName)
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Printf("mcp server starting (log: %s)", logPath)
	return nil
}

func toolError(err error) *mcp.CallToolResult {
	return toolErrorText(err.Error())
}

func toolErrorText(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}
}

// mustSchema builds a JSON Schema for the tool input struct.
func mustSchema(v interface{}) json.RawMessage {
	data, _ := json.Marshal(buildSchema(v))
	return data
}

// buildSchema creates a minimal JSON Schema from the known arg structs.
func buildSchema(v interface{}) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
	props := schema["properties"].(map[string]interface{})

	switch v.(type) {
	case SearchArgs:
		props["keywords"] = map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": "Search keywords; a reminder matches when its keyword line contains any of them as a substring",
		}
		schema["required"] = []string{"keywords"}
	case AddArgs:
		props["command"] = map[string]interface{}{
			"type":        "string",
			"description": "The shell command to store, verbatim",
		}
		props["keywords"] = map[string]interface{}{
			"type":        "string",
			"description": "Space-separated keywords to file the command under",
		}
		schema["required"] = []string{"command", "keywords"}
	}

	return schema
}
