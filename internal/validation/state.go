package validation

import "apv/internal/domain"

// State is the explicit state of the validation loop.
type State int

const (
	StateRunning State = iota
	StateRemediating
	StateClean
	StateExhausted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateRemediating:
		return "remediating"
	case StateClean:
		return "clean"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the loop stops in this state.
func (s State) Terminal() bool {
	return s == StateClean || s == StateExhausted || s == StateFailed
}

// Status maps a terminal state to the ValidationResult status.
func (s State) Status() domain.Status {
	switch s {
	case StateClean:
		return domain.StatusClean
	case StateExhausted:
		return domain.StatusExhausted
	default:
		return domain.StatusFailed
	}
}
