package execution

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"apv/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.RepoPath = t.TempDir()
	cfg.Timeout = 5 * time.Second
	return cfg
}

func TestRunner_Run(t *testing.T) {
	t.Run("captures stdout and exit code", func(t *testing.T) {
		runner := NewRunner(testConfig(t))
		result, err := runner.Run(context.Background(), "echo hello; echo oops >&2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.ExitCode != 0 {
			t.Errorf("expected exit 0, got %d", result.ExitCode)
		}
		if !strings.Contains(result.Stdout, "hello") {
			t.Errorf("stdout not captured: %q", result.Stdout)
		}
		if !strings.Contains(result.Stderr, "oops") {
			t.Errorf("stderr not captured: %q", result.Stderr)
		}
	})

	t.Run("non-zero exit is not an error", func(t *testing.T) {
		runner := NewRunner(testConfig(t))
		result, err := runner.Run(context.Background(), "exit 3")
		if err != nil {
			t.Fatalf("a failing test suite is an expected outcome, got error: %v", err)
		}
		if result.ExitCode != 3 {
			t.Errorf("expected exit 3, got %d", result.ExitCode)
		}
	})

	t.Run("timeout surfaces as TimeoutError", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Timeout = 100 * time.Millisecond
		runner := NewRunner(cfg)

		_, err := runner.Run(context.Background(), "sleep 5")
		var timeout *TimeoutError
		if !errors.As(err, &timeout) {
			t.Fatalf("expected TimeoutError, got %v", err)
		}
	})

	t.Run("unlaunchable command surfaces as EnvironmentError", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.RepoPath = filepath.Join(cfg.RepoPath, "does-not-exist")
		runner := NewRunner(cfg)

		_, err := runner.Run(context.Background(), "echo hi")
		var envErr *EnvironmentError
		if !errors.As(err, &envErr) {
			t.Fatalf("expected EnvironmentError, got %v", err)
		}
	})
}

func TestWriteLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pre_validation.log")

	header := LogHeader{Stage: "pre_validation", Command: "pytest", Attempts: 2}
	result := RunResult{Stdout: "1 failed\n", Stderr: "warning: x\n"}
	if err := WriteLog(path, header, result, 1, []string{"foo"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	content := string(data)
	for _, want := range []string{"STAGE     : pre_validation", "COMMAND   : pytest", "ATTEMPTS  : 2", "1 failed", "--- STDERR ---", "warning: x", "ERROR COUNT : 1", "MODULES REINSTALLED : foo"} {
		if !strings.Contains(content, want) {
			t.Errorf("log missing %q", want)
		}
	}

	// Append-only: a second write keeps the first.
	if err := WriteLog(path, header, result, 1, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ = os.ReadFile(path)
	if strings.Count(string(data), "STAGE     : pre_validation") != 2 {
		t.Error("log must be appended, not truncated")
	}
}

func TestAppendConclusion(t *testing.T) {
	tests := []struct {
		name       string
		pre, post  int
		wantPhrase string
	}{
		{name: "corrected", pre: 2, post: 0, wantPhrase: "THE ERROR IS CORRECTED"},
		{name: "still present", pre: 2, post: 1, wantPhrase: "ERRORS STILL PRESENT"},
		{name: "nothing to correct", pre: 0, post: 0, wantPhrase: "NO ERRORS TO CORRECT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "post_validation.log")
			if err := AppendConclusion(path, tt.pre, tt.post); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			data, _ := os.ReadFile(path)
			if !strings.Contains(string(data), tt.wantPhrase) {
				t.Errorf("expected conclusion %q in log, got:\n%s", tt.wantPhrase, data)
			}
			if !strings.Contains(string(data), "TASK COMPLETED") {
				t.Error("conclusion must end with TASK COMPLETED")
			}
		})
	}
}
