package execution

import (
	"fmt"
	"time"
)

// TimeoutError reports that the test command exceeded its time budget.
// The phase terminates failed; the run is not retried.
type TimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command %q exceeded timeout of %s", e.Command, e.Timeout)
}

// EnvironmentError reports that the test command could not be launched at
// all (e.g. interpreter missing). Fatal for the whole evaluation.
type EnvironmentError struct {
	Command string
	Err     error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("command %q could not be launched: %v", e.Command, e.Err)
}

func (e *EnvironmentError) Unwrap() error { return e.Err }
