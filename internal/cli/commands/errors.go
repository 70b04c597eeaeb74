package commands

import (
	"apv/internal/config"
	"apv/internal/storage"
	"apv/internal/ui"

	"github.com/spf13/cobra"
)

// ErrorsCommand handles the errors command
type ErrorsCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  *ui.ErrorViewer
}

// NewErrorsCommand creates a new ErrorsCommand
func NewErrorsCommand(cfg *config.Config, st storage.Storage, viewer *ui.ErrorViewer) *ErrorsCommand {
	return &ErrorsCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (ec *ErrorsCommand) Execute(cmd *cobra.Command, args []string) error {
	record, err := ec.storage.LoadRecord()
	if err != nil {
		return err
	}

	return ec.viewer.View(record)
}
