// Package git compiles the identity and git settings into one step per
// global configuration key.
package git

import (
	"sort"

	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
	"github.com/felixgeelhaar/winprep/internal/ports"
	"github.com/felixgeelhaar/winprep/internal/provider/winget"
)

// Provider implements the compiler.Provider interface for git configuration.
type Provider struct {
	inspector ports.SystemInspector
	runner    ports.CommandRunner
}

// NewProvider creates a new git provider.
func NewProvider(inspector ports.SystemInspector, runner ports.CommandRunner) *Provider {
	return &Provider{
		inspector: inspector,
		runner:    runner,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "git"
}

// Compile returns user.name, user.email and then every git.config key in
// sorted order. Empty identity fields produce no step.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	cfg := ctx.Config()

	var deps []compiler.StepID
	if pkg, ok := cfg.PackageByName(cfg.Git.Package); ok {
		deps = []compiler.StepID{winget.PackageID(pkg.Name)}
	}

	steps := make([]compiler.Step, 0, len(cfg.Git.Settings)+2)
	if cfg.Identity.Name != "" {
		steps = append(steps, NewConfigStep("user.name", cfg.Identity.Name, deps, p.inspector, p.runner))
	}
	if cfg.Identity.Email != "" {
		steps = append(steps, NewConfigStep("user.email", cfg.Identity.Email, deps, p.inspector, p.runner))
	}

	keys := make([]string, 0, len(cfg.Git.Settings))
	for k := range cfg.Git.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		steps = append(steps, NewConfigStep(k, cfg.Git.Settings[k], deps, p.inspector, p.runner))
	}

	return steps, nil
}

// Ensure Provider implements compiler.Provider.
var _ compiler.Provider = (*Provider)(nil)
