// Package winget compiles the package list into a bootstrap step followed
// by one install step per package.
package winget

import (
	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
	"github.com/felixgeelhaar/winprep/internal/ports"
)

// Provider implements the compiler.Provider interface for Windows Package Manager.
type Provider struct {
	inspector ports.SystemInspector
	runner    ports.CommandRunner
}

// NewProvider creates a new winget provider.
func NewProvider(inspector ports.SystemInspector, runner ports.CommandRunner) *Provider {
	return &Provider{
		inspector: inspector,
		runner:    runner,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "winget"
}

// Compile returns the bootstrap step and a step per configured package,
// in declaration order.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	cfg := ctx.Config()

	steps := make([]compiler.Step, 0, len(cfg.Packages)+1)
	steps = append(steps, NewBootstrapStep(cfg.Bootstrap, p.inspector, p.runner))
	for _, pkg := range cfg.Packages {
		steps = append(steps, NewPackageStep(pkg, p.inspector, p.runner))
	}

	return steps, nil
}

// Ensure Provider implements compiler.Provider.
var _ compiler.Provider = (*Provider)(nil)
