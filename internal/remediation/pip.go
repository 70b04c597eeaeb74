package remediation

import (
	"context"
	"fmt"
	"os/exec"

	"apv/internal/config"
)

// PipInstaller installs Python packages with pip in the target codebase's
// environment.
type PipInstaller struct {
	config *config.Config
}

// NewPipInstaller creates a new PipInstaller
func NewPipInstaller(cfg *config.Config) *PipInstaller {
	return &PipInstaller{config: cfg}
}

// Uninstall runs `<python> -m pip uninstall -y <module>`.
func (p *PipInstaller) Uninstall(ctx context.Context, module string) error {
	cmd := exec.CommandContext(ctx, p.config.PythonBin, "-m", "pip", "uninstall", "-y", module)
	cmd.Dir = p.config.RepoPath
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("pip uninstall %s: %w: %s", module, err, out)
	}
	return nil
}

// Install runs `<python> -m pip install <module>`. pip treats an
// already-satisfied requirement as success, which keeps this idempotent.
func (p *PipInstaller) Install(ctx context.Context, module string) error {
	cmd := exec.CommandContext(ctx, p.config.PythonBin, "-m", "pip", "install", module)
	cmd.Dir = p.config.RepoPath
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("pip install %s: %w: %s", module, err, out)
	}
	return nil
}
