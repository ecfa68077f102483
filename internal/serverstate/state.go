package serverstate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

const stateFileName = "mcp.state"

// State describes a running MCP server instance.
type State struct {
	PID       int       `json:"pid"`
	StartedAt time.Time `json:"startedAt"`
}

// StatePath returns the path to the server state file inside the
// configuration directory.
func StatePath(dir string) string {
	return filepath.Join(dir, stateFileName)
}

// Create writes the state file marking this process as the running
// MCP server.
func Create(dir string) error {
	state := State{
		PID:       os.Getpid(),
		StartedAt: time.Now(),
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	if err := os.WriteFile(StatePath(dir), data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// Remove deletes the state file. A missing file is not an error.
func Remove(dir string) error {
	if err := os.Remove(StatePath(dir)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove state file: %w", err)
	}
	return nil
}

// IsRunning reports whether an MCP server is currently alive according
// to the state file. Stale or corrupt state files are cleaned up.
func IsRunning(dir string) (bool, *State, error) {
	statePath := StatePath(dir)

	data, err := os.ReadFile(statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil, nil
		}
		return false, nil, fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		_ = os.Remove(statePath)
		return false, nil, nil
	}

	process, err := os.FindProcess(state.PID)
	if err != nil {
		_ = os.Remove(statePath)
		return false, nil, nil
	}

	// Signal 0 probes liveness without delivering anything.
	if err := process.Signal(syscall.Signal(0)); err != nil {
		_ = os.Remove(statePath)
		return false, nil, nil
	}

	return true, &state, nil
}
