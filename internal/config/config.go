package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"apv/internal/domain"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Target settings
	RepoPath    string
	TestCommand string

	// Remediation settings
	MaxRetries int
	PythonBin  string

	// Execution settings
	Timeout time.Duration

	// Output settings
	ArtifactDir string

	// Command flags
	Flags Flags
}

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

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		RepoPath:    DefaultRepoPath,
		TestCommand: DefaultTestCommand,
		MaxRetries:  DefaultMaxRetries,
		PythonBin:   DefaultPythonBin,
		Timeout:     DefaultTimeout,
		ArtifactDir: DefaultArtifactDir,
		Flags:       Flags{MaxRetries: DefaultMaxRetries},
	}
}

// Load creates a config, applies .env/environment overrides and then flags.
// Flags win over the environment, the environment over defaults.
func Load(flags Flags) *Config {
	cfg := New()

	// .env in the working directory, if present. Missing file is fine.
	_ = godotenv.Load()

	if v := os.Getenv("APV_REPO_PATH"); v != "" {
		cfg.RepoPath = v
	}
	if v := os.Getenv("APV_TEST_COMMAND"); v != "" {
		cfg.TestCommand = v
	}
	if v := os.Getenv("APV_ARTIFACT_DIR"); v != "" {
		cfg.ArtifactDir = v
	}
	if v := os.Getenv("APV_PYTHON"); v != "" {
		cfg.PythonBin = v
	}
	if v := os.Getenv("APV_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("APV_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	cfg.Flags = flags
	if flags.RepoPath != "" {
		cfg.RepoPath = flags.RepoPath
	}
	if flags.TestCommand != "" {
		cfg.TestCommand = flags.TestCommand
	}
	if flags.ArtifactDir != "" {
		cfg.ArtifactDir = flags.ArtifactDir
	}
	if flags.MaxRetries > 0 {
		cfg.MaxRetries = flags.MaxRetries
	}
	if flags.Timeout > 0 {
		cfg.Timeout = flags.Timeout
	}

	return cfg
}

// ArtifactPath returns the absolute path of a file in the artifact directory.
// Resolved absolute so eval, report and errors always read/write the same
// files regardless of cwd.
func (c *Config) ArtifactPath(name string) string {
	p := filepath.Join(c.ArtifactDir, name)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// LogPath returns the phase-labeled raw log file path.
func (c *Config) LogPath(phase domain.Phase) string {
	if phase == domain.PhasePost {
		return c.ArtifactPath(PostLogFile)
	}
	return c.ArtifactPath(PreLogFile)
}

// ResultPath returns the persisted ValidationResult path for a phase.
func (c *Config) ResultPath(phase domain.Phase) string {
	if phase == domain.PhasePost {
		return c.ArtifactPath(PostResultFile)
	}
	return c.ArtifactPath(PreResultFile)
}
