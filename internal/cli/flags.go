package cli

import (
	"time"

	"apv/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	RepoPath    string
	TestCommand string
	ArtifactDir string
	MaxRetries  int
	Timeout     time.Duration
	Phase       string
	ApplyCmd    string
	Archive     bool
	OpenErrors  bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		RepoPath:    f.RepoPath,
		TestCommand: f.TestCommand,
		ArtifactDir: f.ArtifactDir,
		MaxRetries:  f.MaxRetries,
		Timeout:     f.Timeout,
		Phase:       f.Phase,
		ApplyCmd:    f.ApplyCmd,
		Archive:     f.Archive,
		OpenErrors:  f.OpenErrors,
	}
}
