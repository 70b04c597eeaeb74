package commands

import (
	"context"
	"fmt"

	"apv/internal/config"
	"apv/internal/domain"
	"apv/internal/storage"
	"apv/internal/ui"
	"apv/internal/validation"

	"github.com/spf13/cobra"
)

// ValidateCommand handles the validate command
type ValidateCommand struct {
	config    *config.Config
	loop      *validation.Loop
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewValidateCommand creates a new ValidateCommand
func NewValidateCommand(cfg *config.Config, loop *validation.Loop, st storage.Storage, formatter *ui.Formatter) *ValidateCommand {
	return &ValidateCommand{
		config:    cfg,
		loop:      loop,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (vc *ValidateCommand) Execute(cmd *cobra.Command, args []string) error {
	phase := domain.Phase(vc.config.Flags.Phase)
	if phase != domain.PhasePre && phase != domain.PhasePost {
		return fmt.Errorf("invalid phase %q: must be pre or post", vc.config.Flags.Phase)
	}

	vc.loop.SetProgress(ui.NewAttemptBar(string(phase), vc.config.MaxRetries))

	result, err := vc.loop.Run(context.Background(), phase)
	if err != nil {
		return fmt.Errorf("%s validation failed: %w", phase, err)
	}

	if err := vc.storage.SaveResult(result); err != nil {
		return fmt.Errorf("failed to save %s result: %w", phase, err)
	}

	vc.formatter.PrintPhaseStats(result)
	return nil
}
