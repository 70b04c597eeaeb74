package commands

import (
	"apv/internal/cli"
	"apv/internal/config"
	"apv/internal/execution"
	"apv/internal/history"
	"apv/internal/parser"
	"apv/internal/remediation"
	"apv/internal/storage"
	"apv/internal/ui"
	"apv/internal/validation"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Eval     *EvalCommand
	Validate *ValidateCommand
	Report   *ReportCommand
	Errors   *ErrorsCommand
	History  *HistoryCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	runner := execution.NewRunner(cfg)
	pytestParser := parser.NewPytestParser()
	installer := remediation.NewPipInstaller(cfg)
	engine := remediation.NewEngine(installer)
	loop := validation.NewLoop(cfg, runner, pytestParser, engine)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	viewer := ui.NewErrorViewer(cfg)
	archive := history.NewArchive(cfg)

	return &Commands{
		Eval:     NewEvalCommand(cfg, loop, runner, jsonStorage, formatter, archive, viewer),
		Validate: NewValidateCommand(cfg, loop, jsonStorage, formatter),
		Report:   NewReportCommand(cfg, jsonStorage, formatter),
		Errors:   NewErrorsCommand(cfg, jsonStorage, viewer),
		History:  NewHistoryCommand(cfg, archive),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		*cfg = *config.Load(flags.ToConfigFlags())
		return nil
	}

	// Eval command
	evalCmd := &cobra.Command{
		Use:     "eval",
		Short:   "Run the full pre/post patch evaluation",
		Long:    "Run the pre-patch validation loop, the external patch step, the post-patch loop, and emit the verdict artifacts",
		RunE:    c.Eval.Execute,
		PreRunE: applyFlags,
	}
	addTargetFlags(evalCmd, flags)
	evalCmd.Flags().StringVar(&flags.ApplyCmd, "apply-cmd", "", "Command that applies the agent patch between phases (run in the target repo)")
	evalCmd.Flags().BoolVar(&flags.Archive, "archive", false, "Archive the finished evaluation in the MySQL history")
	evalCmd.Flags().BoolVar(&flags.OpenErrors, "open-errors", false, "Open the interactive error viewer when the post phase is not clean")
	rootCmd.AddCommand(evalCmd)

	// Validate command
	validateCmd := &cobra.Command{
		Use:     "validate",
		Short:   "Run a single validation phase",
		Long:    "Run the validation loop for one phase (pre or post) and persist its result",
		RunE:    c.Validate.Execute,
		PreRunE: applyFlags,
	}
	addTargetFlags(validateCmd, flags)
	validateCmd.Flags().StringVar(&flags.Phase, "phase", "pre", "Phase to run: pre or post")
	rootCmd.AddCommand(validateCmd)

	// Report command
	reportCmd := &cobra.Command{
		Use:     "report",
		Short:   "Re-render the verdict from persisted phase results",
		RunE:    c.Report.Execute,
		PreRunE: applyFlags,
	}
	addTargetFlags(reportCmd, flags)
	rootCmd.AddCommand(reportCmd)

	// Errors command
	errorsCmd := &cobra.Command{
		Use:     "errors",
		Short:   "View the last evaluation's errors interactively",
		RunE:    c.Errors.Execute,
		PreRunE: applyFlags,
	}
	errorsCmd.Flags().StringVar(&flags.ArtifactDir, "artifacts", "", "Artifact directory")
	rootCmd.AddCommand(errorsCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:     "history",
		Short:   "List archived evaluation runs",
		RunE:    c.History.Execute,
		PreRunE: applyFlags,
	}
	historyCmd.Flags().StringVarP(&flags.RepoPath, "repo", "r", "", "Target codebase path (for its .env DB settings)")
	rootCmd.AddCommand(historyCmd)
}

func addTargetFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.RepoPath, "repo", "r", "", "Path to the target codebase")
	cmd.Flags().StringVarP(&flags.TestCommand, "test-cmd", "c", "", "Test command to run in the target codebase")
	cmd.Flags().StringVar(&flags.ArtifactDir, "artifacts", "", "Directory for logs, results and reports")
	cmd.Flags().IntVar(&flags.MaxRetries, "max-retries", 0, "Remediation retry bound per phase (default 3)")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Per-invocation test command timeout (default 15m)")
}
