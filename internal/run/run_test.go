package run

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestPrepare(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantProg string
		wantArgs []string
	}{
		{"program with args", "ls -la /tmp", "ls", []string{"-la", "/tmp"}},
		{"program only", "ls", "ls", nil},
		{"trailing space", "ls ", "ls", nil},
		{"single arg", "grep foo", "grep", []string{"foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, args, err := Prepare(tt.line)
			if err != nil {
				t.Fatalf("Prepare(%q) failed: %v", tt.line, err)
			}
			if prog != tt.wantProg {
				t.Errorf("prog = %q, want %q", prog, tt.wantProg)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestPrepareEmpty(t *testing.T) {
	for _, line := range []string{"", "   "} {
		if _, _, err := Prepare(line); !errors.Is(err, ErrEmptyCommandLine) {
			t.Errorf("Prepare(%q): err = %v, want ErrEmptyCommandLine", line, err)
		}
	}
}

func TestExecHandsOffProgramAndArgs(t *testing.T) {
	// A real executable file so LookPath resolves it.
	script := filepath.Join(t.TempDir(), "fake-prog")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	var gotPath string
	var gotArgv []string
	orig := execFunc
	execFunc = func(path string, argv []string, env []string) error {
		gotPath = path
		gotArgv = argv
		return nil
	}
	defer func() { execFunc = orig }()

	if err := Exec(script + " -la /tmp"); err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	if gotPath != script {
		t.Errorf("exec path = %q, want %q", gotPath, script)
	}
	want := []string{script, "-la", "/tmp"}
	if !reflect.DeepEqual(gotArgv, want) {
		t.Errorf("argv = %v, want %v", gotArgv, want)
	}
}

func TestExecUnknownProgram(t *testing.T) {
	orig := execFunc
	execFunc = func(path string, argv []string, env []string) error {
		t.Fatal("exec should not be reached for an unknown program")
		return nil
	}
	defer func() { execFunc = orig }()

	err := Exec("definitely-not-a-real-program-qq17")
	if err == nil {
		t.Fatal("Exec with unknown program should fail")
	}
	if !strings.Contains(err.Error(), "failed to locate") {
		t.Errorf("err = %v, want a locate failure", err)
	}
}

func TestExecFailureSurfaces(t *testing.T) {
	script := filepath.Join(t.TempDir(), "fake-prog")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	orig := execFunc
	execFunc = func(path string, argv []string, env []string) error {
		return errors.New("exec format error")
	}
	defer func() { execFunc = orig }()

	if err := Exec(script); err == nil {
		t.Error("Exec should surface replacement failure")
	}
}
