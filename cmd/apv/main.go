package main

import (
	"fmt"
	"os"

	"apv/internal/cli"
	"apv/internal/cli/commands"
	"apv/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "apv",
		Short:   "Agent patch validator",
		Long:    `Evaluates whether an AI coding agent's patch resolves a known defect in a target codebase. Runs the test suite before and after the patch, auto-remediates missing dependencies, and emits a structured verdict.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
