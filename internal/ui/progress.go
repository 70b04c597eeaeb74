package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// AttemptBar shows progress across the bounded test invocations of one
// phase (initial run plus up to maxRetries remediation cycles).
type AttemptBar struct {
	bar *progressbar.ProgressBar
}

// NewAttemptBar creates a progress bar for a phase with the given retry bound.
func NewAttemptBar(phase string, maxRetries int) *AttemptBar {
	bar := progressbar.NewOptions(maxRetries+1,
		progressbar.OptionSetDescription(
			color.CyanString("%s validation: ", phase)+
				color.GreenString("[passed: 0")+
				" | "+
				color.RedString("errors: 0]"),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &AttemptBar{bar: bar}
}

// Update advances the bar after a test invocation with the observed counts.
func (p *AttemptBar) Update(attempt, passed, failed int) {
	p.bar.Set(attempt + 1)
	p.bar.Describe(
		color.CyanString("attempt %d: ", attempt+1) +
			color.GreenString("[passed: %d", passed) +
			" | " +
			color.RedString("errors: %d]", failed),
	)
}

// Finish completes the progress bar
func (p *AttemptBar) Finish() {
	p.bar.Finish()
}
