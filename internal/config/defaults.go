package config

import "time"

const (
	// DefaultRepoPath is the default target codebase path
	DefaultRepoPath = "."
	// DefaultTestCommand is the default test command run in the target codebase
	DefaultTestCommand = "python -m pytest -vv"
	// DefaultArtifactDir is the default directory for logs, results and reports
	DefaultArtifactDir = "artifacts"
	// DefaultMaxRetries is the default remediation retry bound per phase
	DefaultMaxRetries = 3
	// DefaultTimeout is the default per-invocation test command timeout
	DefaultTimeout = 15 * time.Minute
	// DefaultPythonBin is the interpreter used for pip remediation
	DefaultPythonBin = "python3"

	// Artifact file names
	PreLogFile     = "pre_validation.log"
	PostLogFile    = "post_validation.log"
	PreResultFile  = "pre_result.json"
	PostResultFile = "post_result.json"
	RecordFile     = "record.json"
	ResultsFile    = "results.json"
	DiffFile       = "changes.patch"
	ReportFile     = "report.html"
)
