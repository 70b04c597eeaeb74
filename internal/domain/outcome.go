package domain

// Classification says what kind of failure an ErrorEntry represents.
type Classification string

const (
	// ClassModuleMissing is an import error caused by a missing installable dependency.
	ClassModuleMissing Classification = "module-missing"
	// ClassTestFailure is a genuine assertion or logic failure in a test.
	ClassTestFailure Classification = "test-failure"
	// ClassOther is a runner-internal error unrelated to user tests.
	ClassOther Classification = "other"
)

// ErrorEntry is one identified failure extracted from test output.
type ErrorEntry struct {
	Classification Classification `json:"classification"`
	Module         string         `json:"module,omitempty"` // set only for module-missing
	Message        string         `json:"message"`
}

// TestOutcome is an immutable snapshot of one test-command execution.
// Created by the parser; never mutated after creation.
type TestOutcome struct {
	ExitCode int          `json:"exit_code"`
	Passed   int          `json:"passed"`
	Failed   int          `json:"failed"`
	Errors   int          `json:"errors"`
	Warnings int          `json:"warnings"`
	Entries  []ErrorEntry `json:"entries,omitempty"`

	// SummaryFound is false when the runner crashed before printing a
	// summary line; the exit code is then the authoritative failure signal.
	SummaryFound bool `json:"summary_found"`
}

// ErrorCount returns the number of failed plus errored tests.
func (o TestOutcome) ErrorCount() int {
	return o.Failed + o.Errors
}

// Clean reports whether the run had no failures of any kind.
func (o TestOutcome) Clean() bool {
	if o.ErrorCount() > 0 || len(o.Entries) > 0 {
		return false
	}
	if !o.SummaryFound {
		return o.ExitCode == 0
	}
	return true
}

// MissingModules returns the unique missing module names in the order
// they were first observed.
func (o TestOutcome) MissingModules() []string {
	var modules []string
	seen := make(map[string]bool)
	for _, e := range o.Entries {
		if e.Classification != ClassModuleMissing || e.Module == "" {
			continue
		}
		if seen[e.Module] {
			continue
		}
		seen[e.Module] = true
		modules = append(modules, e.Module)
	}
	return modules
}

// HasBlockingError reports whether any entry is a test-failure or other
// error, i.e. something remediation can never fix.
func (o TestOutcome) HasBlockingError() bool {
	for _, e := range o.Entries {
		if e.Classification != ClassModuleMissing {
			return true
		}
	}
	return false
}
