package execution

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LogHeader labels one phase's raw log.
type LogHeader struct {
	Stage    string
	Command  string
	Attempts int
}

// WriteLog appends the raw stdout+stderr of a run to the phase log file,
// preceded by a banner header. Pure observability side effect: callers never
// read the log back.
func WriteLog(path string, header LogHeader, result RunResult, errorCount int, reinstalled []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	b.WriteString("=================================\n")
	fmt.Fprintf(&b, "STAGE     : %s\n", header.Stage)
	fmt.Fprintf(&b, "TIME      : %s\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "COMMAND   : %s\n", header.Command)
	fmt.Fprintf(&b, "ATTEMPTS  : %d\n", header.Attempts)
	b.WriteString("=================================\n\n")
	b.WriteString(result.Stdout)
	b.WriteString("\n--- STDERR ---\n")
	b.WriteString(result.Stderr)
	b.WriteString("\n--- SUMMARY ---\n")
	fmt.Fprintf(&b, "ERROR COUNT : %d\n", errorCount)
	if len(reinstalled) > 0 {
		fmt.Fprintf(&b, "MODULES REINSTALLED : %s\n", strings.Join(reinstalled, ", "))
	}

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("write log file: %w", err)
	}
	return nil
}

// AppendConclusion appends the final conclusion trailer to the post-phase
// log once the whole evaluation is done.
func AppendConclusion(path string, preErrors, postErrors int) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	b.WriteString("\n--- FINAL CONCLUSION ---\n")
	switch {
	case preErrors > 0 && postErrors == 0:
		b.WriteString("THE ERROR IS CORRECTED\n")
	case preErrors > 0 && postErrors > 0:
		b.WriteString("ERRORS STILL PRESENT\n")
	default:
		b.WriteString("NO ERRORS TO CORRECT — TESTS WERE ALREADY PASSING\n")
	}
	b.WriteString("TASK COMPLETED\n")

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("write log file: %w", err)
	}
	return nil
}
