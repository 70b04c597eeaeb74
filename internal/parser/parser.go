package parser

import "apv/internal/domain"

// Parser turns raw test-command output into a structured outcome
type Parser interface {
	Parse(stdout, stderr string, exitCode int) domain.TestOutcome
}
