package commands

import (
	"context"
	"fmt"

	"apv/internal/config"
	"apv/internal/domain"
	"apv/internal/execution"
	"apv/internal/history"
	"apv/internal/report"
	"apv/internal/storage"
	"apv/internal/ui"
	"apv/internal/validation"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// EvalCommand handles the eval command
type EvalCommand struct {
	config    *config.Config
	loop      *validation.Loop
	runner    *execution.Runner
	storage   storage.Storage
	formatter *ui.Formatter
	archive   *history.Archive
	viewer    *ui.ErrorViewer
}

// NewEvalCommand creates a new EvalCommand
func NewEvalCommand(
	cfg *config.Config,
	loop *validation.Loop,
	runner *execution.Runner,
	st storage.Storage,
	formatter *ui.Formatter,
	archive *history.Archive,
	viewer *ui.ErrorViewer,
) *EvalCommand {
	return &EvalCommand{
		config:    cfg,
		loop:      loop,
		runner:    runner,
		storage:   st,
		formatter: formatter,
		archive:   archive,
		viewer:    viewer,
	}
}

// Execute runs the command: pre phase, external patch step, post phase,
// diff, aggregate, render. Strictly sequential.
func (ec *EvalCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Pre-phase validation loop
	ec.loop.SetProgress(ui.NewAttemptBar("pre", ec.config.MaxRetries))
	pre, err := ec.loop.Run(ctx, domain.PhasePre)
	if err != nil {
		return fmt.Errorf("pre validation failed: %w", err)
	}
	if err := ec.storage.SaveResult(pre); err != nil {
		return fmt.Errorf("failed to save pre result: %w", err)
	}
	ec.formatter.PrintPhaseStats(pre)

	// External patch step
	if ec.config.Flags.ApplyCmd != "" {
		color.Cyan("\nApplying patch: %s", ec.config.Flags.ApplyCmd)
		run, err := ec.runner.Run(ctx, ec.config.Flags.ApplyCmd)
		if err != nil {
			return fmt.Errorf("patch step failed: %w", err)
		}
		if run.ExitCode != 0 {
			return fmt.Errorf("patch step exited with code %d: %s", run.ExitCode, run.Stderr)
		}
	}

	// Post-phase validation loop
	ec.loop.SetProgress(ui.NewAttemptBar("post", ec.config.MaxRetries))
	post, err := ec.loop.Run(ctx, domain.PhasePost)
	if err != nil {
		return fmt.Errorf("post validation failed: %w", err)
	}
	if err := ec.storage.SaveResult(post); err != nil {
		return fmt.Errorf("failed to save post result: %w", err)
	}
	ec.formatter.PrintPhaseStats(post)

	// Diff between phases, from version control
	diffText := ""
	if run, err := ec.runner.Run(ctx, "git diff"); err == nil && run.ExitCode == 0 {
		diffText = run.Stdout
	}
	diffPath, err := ec.storage.WriteArtifact(config.DiffFile, []byte(diffText))
	if err != nil {
		return err
	}

	// Aggregate and render
	record := report.Aggregate(pre, post, diffText, diffPath)
	if err := ec.storage.SaveRecord(record); err != nil {
		return err
	}
	if err := writeReport(ec.storage, record); err != nil {
		return err
	}

	if err := execution.AppendConclusion(
		ec.config.LogPath(domain.PhasePost),
		pre.Final.ErrorCount(),
		post.Final.ErrorCount(),
	); err != nil {
		return err
	}

	ec.formatter.PrintVerdict(record)

	if ec.config.Flags.Archive {
		if err := ec.archive.Store(record); err != nil {
			return fmt.Errorf("failed to archive evaluation: %w", err)
		}
		color.White("  archived to evaluation history")
	}

	if ec.config.Flags.OpenErrors && post.Status != domain.StatusClean {
		return ec.viewer.View(&record)
	}
	return nil
}

// writeReport renders the record and writes results.json and report.html.
func writeReport(st storage.Storage, record domain.EvaluationRecord) error {
	resultsJSON, htmlDoc, err := report.Render(record)
	if err != nil {
		return err
	}
	if _, err := st.WriteArtifact(config.ResultsFile, resultsJSON); err != nil {
		return err
	}
	if _, err := st.WriteArtifact(config.ReportFile, htmlDoc); err != nil {
		return err
	}
	return nil
}
