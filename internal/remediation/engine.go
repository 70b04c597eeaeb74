package remediation

import "context"

// Installer performs the actual package operations. Abstracted so the
// engine can be exercised without touching pip.
type Installer interface {
	// Uninstall removes a module. Absence is not an error.
	Uninstall(ctx context.Context, module string) error
	// Install installs a module. Installing an already-installed module
	// is a no-op success.
	Install(ctx context.Context, module string) error
}

// Engine reinstalls missing modules. It is only ever handed module names
// extracted from module-missing errors; genuine test failures never reach
// it.
type Engine struct {
	installer Installer
}

// NewEngine creates a new Engine
func NewEngine(installer Installer) *Engine {
	return &Engine{installer: installer}
}

// Remediate reinstalls each missing module and returns the subset that
// installed without error, preserving input order. A failed uninstall is
// tolerated; a failed install excludes the module from the result.
func (e *Engine) Remediate(ctx context.Context, modules []string) []string {
	var installed []string
	for _, module := range modules {
		// Reinstall: drop whatever broken state is there first.
		_ = e.installer.Uninstall(ctx, module)
		if err := e.installer.Install(ctx, module); err != nil {
			continue
		}
		installed = append(installed, module)
	}
	return installed
}
