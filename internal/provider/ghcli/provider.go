// Package ghcli compiles the GitHub CLI authentication step.
package ghcli

import (
	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
	"github.com/felixgeelhaar/winprep/internal/ports"
	"github.com/felixgeelhaar/winprep/internal/provider/winget"
)

// Provider implements the compiler.Provider interface for GitHub CLI.
type Provider struct {
	inspector   ports.SystemInspector
	interactive ports.InteractiveRunner
}

// NewProvider creates a new GitHub CLI provider.
func NewProvider(inspector ports.SystemInspector, interactive ports.InteractiveRunner) *Provider {
	return &Provider{
		inspector:   inspector,
		interactive: interactive,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "ghcli"
}

// Compile returns the auth step unless authentication is skipped.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	cfg := ctx.Config()
	if cfg.GitHub.SkipAuth || cfg.GitHub.Host == "" {
		return nil, nil
	}

	var deps []compiler.StepID
	if pkg, ok := cfg.PackageByName(cfg.GitHub.Package); ok {
		deps = []compiler.StepID{winget.PackageID(pkg.Name)}
	}

	return []compiler.Step{NewAuthStep(cfg.GitHub.Host, deps, p.inspector, p.interactive)}, nil
}

// Ensure Provider implements compiler.Provider.
var _ compiler.Provider = (*Provider)(nil)
