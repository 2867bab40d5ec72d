// Package compiler turns configuration into a validated graph of idempotent
// provisioning steps: Config → Provider → StepGraph.
package compiler

import (
	"errors"

	"github.com/felixgeelhaar/winprep/internal/domain/config"
)

// Compiler asks each provider for its steps and assembles them into a
// StepGraph. Provider order is declaration order, which is also the
// execution order wherever dependencies leave a choice.
type Compiler struct {
	providers []Provider
}

// NewCompiler creates a Compiler over providers, in that order.
func NewCompiler(providers ...Provider) *Compiler {
	return &Compiler{providers: providers}
}

// Compile builds the graph for cfg. It fails with a *StepError when a
// provider errors, two steps share an ID, a dependency is missing, or
// dependencies form a cycle.
func (c *Compiler) Compile(cfg *config.Config) (*StepGraph, error) {
	ctx := NewCompileContext(cfg)
	graph := NewStepGraph()

	for _, provider := range c.providers {
		steps, err := provider.Compile(ctx)
		if err != nil {
			return nil, NewProviderFailedError(provider.Name(), err)
		}
		for _, step := range steps {
			err := graph.Add(step)
			switch {
			case errors.Is(err, ErrDuplicateStep):
				return nil, NewStepDuplicateError(step.ID().String()).WithProvider(provider.Name())
			case err != nil:
				return nil, err
			}
		}
	}

	if err := graph.Validate(); err != nil {
		return nil, err
	}
	// A sort proves the graph is acyclic before anything runs.
	if _, err := graph.TopologicalSort(); err != nil {
		return nil, err
	}
	return graph, nil
}
