package execution

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"apv/internal/config"
)

// RunResult captures one test-command execution.
type RunResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Runner executes the configured test command in the target codebase.
type Runner struct {
	config *config.Config
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg}
}

// Run executes command through the shell in the target repo with the
// configured timeout. A failing test suite is an expected outcome, so a
// non-zero exit code is not an error: only *TimeoutError and
// *EnvironmentError are returned as errors.
func (r *Runner) Run(ctx context.Context, command string) (RunResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "sh", "-c", command)
	cmd.Dir = r.config.RepoPath
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if runCtx.Err() == context.DeadlineExceeded {
		result.ExitCode = -1
		return result, &TimeoutError{Command: command, Timeout: r.config.Timeout}
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		// The process never started: shell missing, bad working dir, etc.
		return result, &EnvironmentError{Command: command, Err: err}
	}

	result.ExitCode = 0
	return result, nil
}
