package validation

import (
	"context"
	"errors"
	"time"

	"apv/internal/config"
	"apv/internal/domain"
	"apv/internal/execution"
	"apv/internal/parser"
)

// Runner executes the test command once.
type Runner interface {
	Run(ctx context.Context, command string) (execution.RunResult, error)
}

// Remediator reinstalls missing modules, returning the ones that installed.
type Remediator interface {
	Remediate(ctx context.Context, modules []string) []string
}

// Progress receives attempt updates while a phase runs.
type Progress interface {
	Update(attempt, passed, failed int)
	Finish()
}

// Loop drives run → parse → remediate in a bounded retry cycle and
// finalizes exactly one ValidationResult per phase.
type Loop struct {
	config   *config.Config
	runner   Runner
	parser   parser.Parser
	engine   Remediator
	progress Progress
}

// NewLoop creates a new Loop
func NewLoop(cfg *config.Config, runner Runner, p parser.Parser, engine Remediator) *Loop {
	return &Loop{config: cfg, runner: runner, parser: p, engine: engine}
}

// SetProgress sets the progress reporter for the loop.
func (l *Loop) SetProgress(progress Progress) {
	l.progress = progress
}

// Run executes one phase of the validation loop until a terminal state is
// reached. Timeouts and genuine test failures are legitimate terminal
// outcomes captured in the result; only an unlaunchable command is
// returned as an error.
func (l *Loop) Run(ctx context.Context, phase domain.Phase) (domain.ValidationResult, error) {
	state := StateRunning
	attempts := 0
	var reinstalled []string
	var outcome domain.TestOutcome
	var lastRun execution.RunResult
	var duration time.Duration

	for !state.Terminal() {
		switch state {
		case StateRunning:
			run, err := l.runner.Run(ctx, l.config.TestCommand)
			if err != nil {
				var timeout *execution.TimeoutError
				if !errors.As(err, &timeout) {
					return domain.ValidationResult{}, err
				}
				// A timeout is not a remediable module error: terminal,
				// not retried.
				lastRun = run
				duration += run.Duration
				outcome = l.parser.Parse(run.Stdout, run.Stderr, run.ExitCode)
				state = StateFailed
				continue
			}
			lastRun = run
			duration += run.Duration
			outcome = l.parser.Parse(run.Stdout, run.Stderr, run.ExitCode)
			if l.progress != nil {
				l.progress.Update(attempts, outcome.Passed, outcome.ErrorCount())
			}
			state = l.next(outcome, attempts)

		case StateRemediating:
			installed := l.engine.Remediate(ctx, outcome.MissingModules())
			newly := newlyInstalled(installed, reinstalled)
			if len(newly) == 0 {
				state = StateExhausted
				continue
			}
			reinstalled = append(reinstalled, newly...)
			attempts++
			state = StateRunning
		}
	}

	if l.progress != nil {
		l.progress.Finish()
	}

	result := domain.ValidationResult{
		Phase:       phase,
		Final:       outcome,
		Attempts:    attempts,
		Reinstalled: reinstalled,
		Status:      state.Status(),
		Duration:    duration,
	}

	header := execution.LogHeader{
		Stage:    string(phase) + "_validation",
		Command:  l.config.TestCommand,
		Attempts: attempts,
	}
	if err := execution.WriteLog(l.config.LogPath(phase), header, lastRun, outcome.ErrorCount(), reinstalled); err != nil {
		return result, err
	}

	return result, nil
}

// next is the transition function out of Running.
func (l *Loop) next(outcome domain.TestOutcome, attempts int) State {
	if outcome.Clean() {
		return StateClean
	}
	if outcome.HasBlockingError() {
		// Genuine failures are not remediable; never attempt remediation.
		return StateFailed
	}
	missing := outcome.MissingModules()
	if len(missing) == 0 {
		return StateFailed
	}
	if attempts >= l.config.MaxRetries {
		return StateFailed
	}
	return StateRemediating
}

// newlyInstalled returns the installed modules not already recorded,
// preserving order. A module that only ever reinstalls without making the
// run cleaner must not keep the loop alive.
func newlyInstalled(installed, recorded []string) []string {
	seen := make(map[string]bool, len(recorded))
	for _, m := range recorded {
		seen[m] = true
	}
	var newly []string
	for _, m := range installed {
		if !seen[m] {
			newly = append(newly, m)
		}
	}
	return newly
}
