package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cmdremind/cli/internal/prompt"
)

// Store is the flat-file reminder store. Every operation reads the
// whole backing file, mutates the line sequence in memory, and
// rewrites the file in full. The file is the sole source of truth;
// nothing survives between invocations.
type Store struct {
	path     string
	prompter prompt.Prompter
}

// New returns a store backed by the file at path. Prompts for merge,
// remove, and run confirmation go through p.
func New(path string, p prompt.Prompter) *Store {
	return &Store{path: path, prompter: p}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Lines reads the backing file and returns its line sequence. The
// file (and its directory) is created on first use.
func (s *Store) Lines() ([]string, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open reminders file: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read reminders file: %w", err)
	}
	return ParseLines(string(data)), nil
}

// All returns the store's records in order.
func (s *Store) All() ([]Record, error) {
	lines, err := s.Lines()
	if err != nil {
		return nil, err
	}
	return PairRecords(lines)
}

// write truncates the backing file and rewrites it from lines.
func (s *Store) write(lines []string) error {
	if err := os.WriteFile(s.path, []byte(JoinLines(lines)), 0644); err != nil {
		return fmt.Errorf("failed to write reminders file: %w", err)
	}
	return nil
}

// Add stores a command under the given space-separated keywords. If a
// record for the exact command already exists the user is asked
// whether to merge the keywords into it instead; declining (or an
// unreadable answer) leaves the store untouched. The returned bool
// reports whether the store was rewritten.
func (s *Store) Add(command, keywords string) (bool, error) {
	lines, err := s.Lines()
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(command) == "" {
		return false, ErrEmptyCommand
	}

	for i, line := range lines {
		if line == command {
			return s.mergeInto(lines, i, keywords)
		}
	}

	lines = append(lines, Marker+" "+keywords, command)
	if err := s.write(lines); err != nil {
		return false, err
	}
	return true, nil
}

// mergeInto handles adding keywords to a command that already has a
// record at line index commandLine.
func (s *Store) mergeInto(lines []string, commandLine int, keywords string) (bool, error) {
	ok, err := s.prompter.Confirm("A reminder already exists for this command. Merge keywords?", lines[commandLine])
	if err != nil || !ok {
		return false, nil
	}
	if commandLine == 0 {
		return false, fmt.Errorf("%w: command line %d has no keyword line", ErrMalformedStore, commandLine)
	}
	lines[commandLine-1] = MergeKeywords(lines[commandLine-1], keywords)
	if err := s.write(lines); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes records matching any of the space-separated
// keywords, asking per match. An unreadable answer counts as a yes:
// removal has always failed open, and changing that silently would
// surprise existing users. Returns the number of records removed.
func (s *Store) Remove(keywords string) (int, error) {
	lines, err := s.Lines()
	if err != nil {
		return 0, err
	}

	matches, err := FindMatches(lines, strings.Split(keywords, " "))
	if err != nil {
		return 0, err
	}

	var confirmed []int
	for _, idx := range matches {
		ok, err := s.prompter.Confirm(fmt.Sprintf("Remove %q?", lines[idx]), "")
		if err != nil {
			ok = true
		}
		if ok {
			confirmed = append(confirmed, idx)
		}
	}

	// Delete high-to-low so earlier indices stay valid. Each match is
	// a command-line index, so idx-1 is its keyword line.
	for i := len(confirmed) - 1; i >= 0; i-- {
		idx := confirmed[i]
		lines = append(lines[:idx-1], lines[idx+1:]...)
	}

	if err := s.write(lines); err != nil {
		return 0, err
	}
	return len(confirmed), nil
}

// SearchResult is the outcome of a Search.
type SearchResult struct {
	Matched   int    // number of matching records
	Command   string // the command to run, when Confirmed
	Confirmed bool
}

// Search finds records matching any of the keywords and asks the user
// which one to run: a single match is confirmed yes/no, multiple
// matches become a choice list. Unlike Remove, an unreadable answer
// here is an error: running a command nobody confirmed is not an
// acceptable default.
func (s *Store) Search(keywords []string) (SearchResult, error) {
	lines, err := s.Lines()
	if err != nil {
		return SearchResult{}, err
	}

	matches, err := FindMatches(lines, keywords)
	if err != nil {
		return SearchResult{}, err
	}

	res := SearchResult{Matched: len(matches)}
	switch len(matches) {
	case 0:
		return res, nil
	case 1:
		cmd := lines[matches[0]]
		yes, err := s.prompter.Confirm(fmt.Sprintf("Run %q?", cmd), "")
		if err != nil {
			return res, fmt.Errorf("failed to read answer: %w", err)
		}
		if yes {
			res.Command = cmd
			res.Confirmed = true
		}
		return res, nil
	default:
		options := make([]string, len(matches))
		for i, idx := range matches {
			options[i] = lines[idx]
		}
		choice, err := s.prompter.Choose("Select a command to run", options)
		if err != nil {
			return res, fmt.Errorf("failed to read answer: %w", err)
		}
		res.Command = options[choice]
		res.Confirmed = true
		return res, nil
	}
}
