// Package vscode compiles the editor extension list into install steps.
package vscode

import (
	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
	"github.com/felixgeelhaar/winprep/internal/domain/config"
	"github.com/felixgeelhaar/winprep/internal/ports"
	"github.com/felixgeelhaar/winprep/internal/provider/winget"
)

// Provider implements the compiler.Provider interface for editor extensions.
type Provider struct {
	inspector ports.SystemInspector
	runner    ports.CommandRunner
}

// NewProvider creates a new editor provider.
func NewProvider(inspector ports.SystemInspector, runner ports.CommandRunner) *Provider {
	return &Provider{
		inspector: inspector,
		runner:    runner,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "vscode"
}

// Compile returns one step per configured extension.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	cfg := ctx.Config()
	if len(cfg.Editor.Extensions) == 0 {
		return nil, nil
	}

	editor := cfg.Editor.Command
	if editor == "" {
		editor = config.DefaultEditorCommand
	}

	var deps []compiler.StepID
	if pkg, ok := cfg.PackageByName(cfg.Editor.Package); ok {
		deps = []compiler.StepID{winget.PackageID(pkg.Name)}
	}

	steps := make([]compiler.Step, 0, len(cfg.Editor.Extensions))
	for _, ext := range cfg.Editor.Extensions {
		steps = append(steps, NewExtensionStep(editor, ext, deps, p.inspector, p.runner))
	}
	return steps, nil
}

// Ensure Provider implements compiler.Provider.
var _ compiler.Provider = (*Provider)(nil)
