package commands

import (
	"fmt"

	"apv/internal/config"
	"apv/internal/history"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config  *config.Config
	archive *history.Archive
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, archive *history.Archive) *HistoryCommand {
	return &HistoryCommand{
		config:  cfg,
		archive: archive,
	}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	runs, err := hc.archive.List(20)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		color.Yellow("No archived evaluations")
		return nil
	}

	color.Cyan("%-6s %-22s %-10s %-11s %-9s %s", "ID", "TIMESTAMP", "PRE ERRS", "POST ERRS", "RESOLVED", "REPO")
	for _, r := range runs {
		line := fmt.Sprintf("%-6d %-22s %-10d %-11d %-9t %s", r.ID, r.Timestamp, r.PreErrors, r.PostErrors, r.Resolved, r.RepoPath)
		if r.Resolved {
			color.Green("%s", line)
		} else {
			color.White("%s", line)
		}
	}
	return nil
}
