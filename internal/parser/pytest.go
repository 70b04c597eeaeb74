package parser

import (
	"fmt"
	"regexp"
	"strings"

	"apv/internal/domain"
)

// PytestParser parses pytest output into a TestOutcome. Pure and
// deterministic: the same captured text always yields the same outcome.
type PytestParser struct {
	signatures []Signature
}

// NewPytestParser creates a parser with the given missing-module
// signatures, or the defaults when none are given.
func NewPytestParser(signatures ...Signature) *PytestParser {
	if len(signatures) == 0 {
		signatures = DefaultSignatures()
	}
	return &PytestParser{signatures: signatures}
}

var (
	summaryLineRe = regexp.MustCompile(`(?m)^=+ .*(?:\d+ (?:passed|failed|errors?|warnings?)|no tests ran).* =+\s*$`)
	passedRe      = regexp.MustCompile(`(\d+) passed`)
	failedRe      = regexp.MustCompile(`(\d+) failed`)
	errorsRe      = regexp.MustCompile(`(\d+) errors?`)
	warningsRe    = regexp.MustCompile(`(\d+) warnings?`)
)

// Parse scans stdout+stderr for missing-module signatures and failure
// lines, then overlays the counts from the pytest summary line when one is
// present. Without a summary line (runner crashed before printing one) the
// counts are synthesized from directly observed failure lines and the exit
// code stays the authoritative failure signal.
func (p *PytestParser) Parse(stdout, stderr string, exitCode int) domain.TestOutcome {
	combined := stdout + "\n" + stderr

	outcome := domain.TestOutcome{ExitCode: exitCode}
	outcome.Entries = p.scanEntries(combined)

	summary := lastSummaryLine(combined)
	if summary != "" {
		outcome.SummaryFound = true
		outcome.Passed = extractCount(passedRe, summary)
		outcome.Failed = extractCount(failedRe, summary)
		outcome.Errors = extractCount(errorsRe, summary)
		outcome.Warnings = extractCount(warningsRe, summary)
		return outcome
	}

	// No summary line: count what we actually saw.
	for _, e := range outcome.Entries {
		switch e.Classification {
		case domain.ClassTestFailure:
			outcome.Failed++
		default:
			outcome.Errors++
		}
	}
	return outcome
}

// scanEntries classifies every failure line. A line matching a
// missing-module signature is always module-missing, de-duplicated by
// module name in first-observed order.
func (p *PytestParser) scanEntries(text string) []domain.ErrorEntry {
	var entries []domain.ErrorEntry
	seenModules := make(map[string]bool)
	seenInternal := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if module, ok := p.matchModule(trimmed); ok {
			if !seenModules[module] {
				seenModules[module] = true
				entries = append(entries, domain.ErrorEntry{
					Classification: domain.ClassModuleMissing,
					Module:         module,
					Message:        trimmed,
				})
			}
			continue
		}

		if strings.HasPrefix(trimmed, "INTERNALERROR>") {
			// Runner-internal error unrelated to user tests.
			if !seenInternal {
				seenInternal = true
				entries = append(entries, domain.ErrorEntry{
					Classification: domain.ClassOther,
					Message:        trimmed,
				})
			}
			continue
		}

		if strings.HasPrefix(trimmed, "ERROR ") && !strings.Contains(trimmed, " - ") && len(seenModules) > 0 {
			// Bare collection-error reference in the short summary; its
			// cause was already classified above.
			continue
		}

		if strings.HasPrefix(trimmed, "FAILED ") || strings.HasPrefix(trimmed, "ERROR ") {
			entries = append(entries, domain.ErrorEntry{
				Classification: domain.ClassTestFailure,
				Message:        trimmed,
			})
		}
	}

	return entries
}

func (p *PytestParser) matchModule(line string) (string, bool) {
	for _, sig := range p.signatures {
		if m := sig.Pattern.FindStringSubmatch(line); len(m) >= 2 {
			return m[1], true
		}
	}
	return "", false
}

// lastSummaryLine returns the last pytest summary line, e.g.
// "==== 1 failed, 2 passed, 3 warnings in 0.12s ====".
func lastSummaryLine(text string) string {
	matches := summaryLineRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}
	return strings.TrimSpace(matches[len(matches)-1])
}

func extractCount(re *regexp.Regexp, line string) int {
	m := re.FindStringSubmatch(line)
	if len(m) < 2 {
		return 0
	}
	var n int
	fmt.Sscanf(m[1], "%d", &n)
	return n
}
