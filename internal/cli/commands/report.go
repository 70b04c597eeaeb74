package commands

import (
	"fmt"

	"apv/internal/config"
	"apv/internal/domain"
	"apv/internal/report"
	"apv/internal/storage"
	"apv/internal/ui"

	"github.com/spf13/cobra"
)

// ReportCommand handles the report command
type ReportCommand struct {
	config    *config.Config
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(cfg *config.Config, st storage.Storage, formatter *ui.Formatter) *ReportCommand {
	return &ReportCommand{
		config:    cfg,
		storage:   st,
		formatter: formatter,
	}
}

// Execute re-aggregates and re-renders from persisted phase results.
func (rc *ReportCommand) Execute(cmd *cobra.Command, args []string) error {
	pre, err := rc.storage.LoadResult(domain.PhasePre)
	if err != nil {
		return fmt.Errorf("no pre result to report on: %w", err)
	}
	post, err := rc.storage.LoadResult(domain.PhasePost)
	if err != nil {
		return fmt.Errorf("no post result to report on: %w", err)
	}

	// The diff artifact is optional; a missing one means no change.
	diffText := ""
	diffPath := ""
	if data, err := rc.storage.ReadArtifact(config.DiffFile); err == nil {
		diffText = string(data)
		diffPath = rc.config.ArtifactPath(config.DiffFile)
	}

	record := report.Aggregate(*pre, *post, diffText, diffPath)
	if err := rc.storage.SaveRecord(record); err != nil {
		return err
	}
	if err := writeReport(rc.storage, record); err != nil {
		return err
	}

	rc.formatter.PrintPhaseStats(*pre)
	rc.formatter.PrintPhaseStats(*post)
	rc.formatter.PrintVerdict(record)
	return nil
}
