package run

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

// ErrEmptyCommandLine reports a stored command line with no program.
var ErrEmptyCommandLine = errors.New("command line is empty")

// execFunc is swapped out in tests. syscall.Exec replaces the process
// image and never returns on success.
var execFunc = syscall.Exec

// Prepare splits a stored command line into the program and its
// argument list. A line with no remainder after the program is a
// program with zero arguments.
func Prepare(commandLine string) (string, []string, error) {
	if strings.TrimSpace(commandLine) == "" {
		return "", nil, ErrEmptyCommandLine
	}
	prog, rest, found := strings.Cut(commandLine, " ")
	if !found || rest == "" {
		return prog, nil, nil
	}
	return prog, strings.Split(rest, " "), nil
}

// Exec replaces the current process image with the given command.
// It returns only on failure.
func Exec(commandLine string) error {
	prog, args, err := Prepare(commandLine)
	if err != nil {
		return err
	}

	path, err := exec.LookPath(prog)
	if err != nil {
		return fmt.Errorf("failed to locate %q: %w", prog, err)
	}

	argv := append([]string{prog}, args...)
	if err := execFunc(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("failed to run %q: %w", commandLine, err)
	}
	return nil
}
