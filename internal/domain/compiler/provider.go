package compiler

import "github.com/felixgeelhaar/winprep/internal/domain/config"

// Provider compiles a section of configuration into executable steps.
// Each provider handles one kind of resource (packages, git config, ...).
type Provider interface {
	// Name returns the provider's identifier (e.g., "winget", "git").
	Name() string

	// Compile transforms configuration into a list of steps.
	// Cross-provider dependencies are expressed through Step.DependsOn().
	Compile(ctx CompileContext) ([]Step, error)
}

// CompileContext provides configuration to providers during compilation.
type CompileContext struct {
	config *config.Config
}

// NewCompileContext creates a new CompileContext with the given configuration.
func NewCompileContext(cfg *config.Config) CompileContext {
	return CompileContext{config: cfg}
}

// Config returns the configuration being compiled. Never nil.
func (c CompileContext) Config() *config.Config {
	if c.config == nil {
		return &config.Config{}
	}
	return c.config
}
