package ui

import (
	"fmt"

	"apv/internal/config"
	"apv/internal/domain"
	"github.com/fatih/color"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintPhaseStats displays the summary table for one finalized phase.
func (f *Formatter) PrintPhaseStats(result domain.ValidationResult) {
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                 %-4s Validation Statistics                    ║", result.Phase)
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	fmt.Printf("│ %-31s │ ", "Status")
	switch result.Status {
	case domain.StatusClean:
		color.Green("%-27s │\n", result.Status)
	default:
		color.Red("%-27s │\n", result.Status)
	}
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Passed")
	color.Green("%-27d │\n", result.Final.Passed)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Failed")
	color.Red("%-27d │\n", result.Final.Failed)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Errors")
	color.Red("%-27d │\n", result.Final.Errors)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Warnings")
	color.Yellow("%-27d │\n", result.Final.Warnings)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Remediation attempts")
	color.White("%-27d │\n", result.Attempts)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Duration")
	color.White("%-27s │\n", fmt.Sprintf("%.2fs", result.Duration.Seconds()))

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	if len(result.Reinstalled) > 0 {
		fmt.Println()
		color.Yellow("Modules reinstalled:")
		for _, m := range result.Reinstalled {
			color.White("  - %s", m)
		}
	}
}

// PrintVerdict displays the final resolution verdict of an evaluation.
func (f *Formatter) PrintVerdict(record domain.EvaluationRecord) {
	fmt.Println()
	switch {
	case record.Resolved:
		color.Green("✓ RESOLVED: %d error(s) before the patch, none after", record.Pre.Final.ErrorCount())
	case record.Reason == domain.ReasonNothingToResolve:
		color.Yellow("- NOT RESOLVED: %s (tests were already passing)", record.Reason)
	default:
		color.Red("✗ NOT RESOLVED: %d error(s) before, %d after (post status: %s)",
			record.Pre.Final.ErrorCount(), record.Post.Final.ErrorCount(), record.Post.Status)
	}

	if record.ChangeApplied {
		color.White("  change applied: yes (%s)", record.DiffPath)
	} else {
		color.White("  change applied: no")
	}
}
