// Package app wires configuration, providers, and the runner into the
// provisioning workflow the CLI drives.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/felixgeelhaar/winprep/internal/adapters/command"
	"github.com/felixgeelhaar/winprep/internal/adapters/environment"
	"github.com/felixgeelhaar/winprep/internal/adapters/inspector"
	"github.com/felixgeelhaar/winprep/internal/adapters/logging"
	"github.com/felixgeelhaar/winprep/internal/adapters/prompt"
	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
	"github.com/felixgeelhaar/winprep/internal/domain/config"
	"github.com/felixgeelhaar/winprep/internal/domain/execution"
	"github.com/felixgeelhaar/winprep/internal/ports"
	"github.com/felixgeelhaar/winprep/internal/provider/ghcli"
	"github.com/felixgeelhaar/winprep/internal/provider/git"
	"github.com/felixgeelhaar/winprep/internal/provider/vscode"
	"github.com/felixgeelhaar/winprep/internal/provider/winget"
)

// ErrAborted is returned when the user declines the initial confirmation.
var ErrAborted = errors.New("provisioning aborted by user")

// Runner runs commands both captured and attached to the terminal.
type Runner interface {
	ports.CommandRunner
	ports.InteractiveRunner
}

// Options configure a single provisioning run.
type Options struct {
	// ConfigPath is a YAML or TOML file. Empty uses the built-in step list.
	ConfigPath string
	// AssumeYes skips the initial confirmation.
	AssumeYes bool
	// RetryPrompt offers a retry after a failed apply.
	RetryPrompt bool
}

// Provisioner is the application facade.
type Provisioner struct {
	loader    *config.Loader
	runner    Runner
	inspector ports.SystemInspector
	env       ports.Environment
	prompter  ports.Prompter
	logger    ports.Logger
	styles    Styles
	verbose   bool
	out       io.Writer
}

// New creates a Provisioner backed by the real system.
func New(out io.Writer) *Provisioner {
	env := environment.NewView(environment.NewStore())
	runner := command.NewRealRunner().WithEnvironment(env)

	return &Provisioner{
		loader:    config.NewLoader(),
		runner:    runner,
		inspector: inspector.New(runner, env),
		env:       env,
		prompter:  prompt.New(),
		logger:    logging.NewNop(),
		styles:    DefaultStyles(),
		out:       out,
	}
}

// WithRunner sets the command runner used by providers.
func (p *Provisioner) WithRunner(r Runner) *Provisioner {
	p.runner = r
	return p
}

// WithInspector sets the probe backend.
func (p *Provisioner) WithInspector(i ports.SystemInspector) *Provisioner {
	p.inspector = i
	return p
}

// WithEnvironment sets the environment view refreshed after each apply.
func (p *Provisioner) WithEnvironment(env ports.Environment) *Provisioner {
	p.env = env
	return p
}

// WithPrompter sets the prompter for identity, confirmation, and retry questions.
func (p *Provisioner) WithPrompter(pr ports.Prompter) *Provisioner {
	p.prompter = pr
	return p
}

// WithLogger sets the logger.
func (p *Provisioner) WithLogger(l ports.Logger) *Provisioner {
	p.logger = l
	return p
}

// WithStyles sets the output styles.
func (p *Provisioner) WithStyles(s Styles) *Provisioner {
	p.styles = s
	return p
}

// WithVerbose makes PrintPlan describe every pending step in full.
func (p *Provisioner) WithVerbose(v bool) *Provisioner {
	p.verbose = v
	return p
}

// Run provisions the machine: it loads the configuration, collects the git
// identity, asks for confirmation, and executes every step.
// The returned report is nil only when nothing was executed.
func (p *Provisioner) Run(ctx context.Context, opts Options) (*execution.Report, error) {
	cfg, err := p.loadConfig(ctx, opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.RetryPrompt {
		cfg.Run.RetryPrompt = true
	}

	cfg, err = p.collectIdentity(ctx, cfg)
	if err != nil {
		return nil, err
	}

	graph, err := p.compile(cfg)
	if err != nil {
		return nil, err
	}

	if !opts.AssumeYes {
		p.printIntro(cfg, graph.Len())
		ok, err := p.prompter.Confirm(ctx, "Proceed?")
		if err != nil {
			return nil, fmt.Errorf("confirming run: %w", err)
		}
		if !ok {
			return nil, ErrAborted
		}
	}

	runner := execution.NewRunner().
		WithEnvironment(p.env).
		WithPrompter(p.prompter).
		WithLogger(p.logger).
		WithObserver(&statusPrinter{out: p.out, styles: p.styles}).
		WithRetryPrompt(cfg.Run.RetryPrompt)

	p.printf("\n")
	report, err := runner.Run(ctx, graph)
	if err != nil {
		return report, fmt.Errorf("run failed: %w", err)
	}

	p.PrintReport(report)
	return report, nil
}

// Plan loads the configuration and probes every step without applying.
// Identity steps appear only when the configuration sets them.
func (p *Provisioner) Plan(ctx context.Context, configPath string) (*execution.Plan, error) {
	cfg, err := p.loadConfig(ctx, configPath)
	if err != nil {
		return nil, err
	}

	graph, err := p.compile(cfg)
	if err != nil {
		return nil, err
	}

	plan, err := execution.NewPlanner().Plan(ctx, graph)
	if err != nil {
		return nil, fmt.Errorf("failed to plan: %w", err)
	}
	return plan, nil
}

func (p *Provisioner) loadConfig(ctx context.Context, path string) (*config.Config, error) {
	cfg, err := p.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	source := path
	if source == "" {
		source = "built-in"
	}
	p.logger.Debug(ctx, "configuration loaded",
		ports.F("source", source),
		ports.F("packages", len(cfg.Packages)),
	)
	return cfg, nil
}

// compile turns cfg into a step graph. Provider order is the declaration
// order the runner preserves.
func (p *Provisioner) compile(cfg *config.Config) (*compiler.StepGraph, error) {
	graph, err := compiler.NewCompiler(
		winget.NewProvider(p.inspector, p.runner),
		git.NewProvider(p.inspector, p.runner),
		ghcli.NewProvider(p.inspector, p.runner),
		vscode.NewProvider(p.inspector, p.runner),
	).Compile(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to compile: %w", err)
	}
	return graph, nil
}

// printf writes to the output writer, ignoring errors.
func (p *Provisioner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}
