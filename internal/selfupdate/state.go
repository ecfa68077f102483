package selfupdate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const (
	stateFileName = "remind-update.json"
	defaultTTL    = 24 * time.Hour
)

// statePathFunc allows overriding for tests.
var statePathFunc = defaultStatePath

// State tracks when updates were last checked for and which versions
// the user was already warned about.
type State struct {
	LastCheck        time.Time       `json:"last_check"`
	WarnedForVersion map[string]bool `json:"warned_for_version,omitempty"`
}

// LoadState reads the cached state from the user cache directory. A
// missing or corrupt file yields a fresh empty state.
func LoadState() (*State, error) {
	path, err := statePathFunc()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{WarnedForVersion: make(map[string]bool)}, nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return &State{WarnedForVersion: make(map[string]bool)}, nil
	}

	if state.WarnedForVersion == nil {
		state.WarnedForVersion = make(map[string]bool)
	}

	return &state, nil
}

// SaveState writes the state to the user cache directory.
func (s *State) SaveState() error {
	path, err := statePathFunc()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ShouldCheck reports whether the TTL since the last check has passed.
func (s *State) ShouldCheck(ttl time.Duration) bool {
	return time.Since(s.LastCheck) >= ttl
}

// MarkChecked updates the last check time.
func (s *State) MarkChecked() {
	s.LastCheck = time.Now()
}

// ShouldWarnForVersion reports whether this version was not warned
// about yet.
func (s *State) ShouldWarnForVersion(version string) bool {
	return !s.WarnedForVersion[version]
}

// MarkWarnedForVersion records that the user saw a warning for version.
func (s *State) MarkWarnedForVersion(version string) {
	s.WarnedForVersion[version] = true
}

func defaultStatePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "remind", stateFileName), nil
}
