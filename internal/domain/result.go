package domain

import "time"

// Phase identifies one complete run of the validation loop.
type Phase string

const (
	PhasePre  Phase = "pre"
	PhasePost Phase = "post"
)

// Status is the terminal state of a validation loop run.
type Status string

const (
	// StatusClean means the final run had no errors.
	StatusClean Status = "clean"
	// StatusFailed means a genuine test failure was observed, the retry
	// bound was reached, or the test command timed out.
	StatusFailed Status = "failed"
	// StatusExhausted means missing modules remained but none could be
	// installed anymore.
	StatusExhausted Status = "exhausted"
)

// ValidationResult is the finalized outcome of one phase after the retry
// loop terminates. Immutable once created.
type ValidationResult struct {
	Phase       Phase         `json:"phase"`
	Final       TestOutcome   `json:"final"`
	Attempts    int           `json:"attempts"`
	Reinstalled []string      `json:"reinstalled,omitempty"`
	Status      Status        `json:"status"`
	Duration    time.Duration `json:"duration_ns"`
}

// ReasonNothingToResolve marks the verdict of a run whose pre phase was
// already clean, so a no-op patch is never credited as a fix.
const ReasonNothingToResolve = "nothing to resolve"

// EvaluationRecord pairs the pre and post phase results with the derived
// resolution verdict. Owned by the aggregator; consumed read-only by the
// renderer and the viewers.
type EvaluationRecord struct {
	Pre           ValidationResult `json:"pre"`
	Post          ValidationResult `json:"post"`
	Resolved      bool             `json:"resolved"`
	Reason        string           `json:"reason,omitempty"`
	DiffPath      string           `json:"diff_path,omitempty"`
	ChangeApplied bool             `json:"change_applied"`
	Timestamp     string           `json:"timestamp"`
}

// ResultsDocument is the canonical machine-readable results.json schema.
type ResultsDocument struct {
	PreErrors     int  `json:"pre_errors"`
	PostErrors    int  `json:"post_errors"`
	TestsPassing  bool `json:"tests_passing"`
	ChangeApplied bool `json:"change_applied"`
}
