package compiler

import (
	"context"

	"github.com/felixgeelhaar/winprep/internal/ports"
)

// RunContext is handed to Check, Plan, and Apply.
type RunContext struct {
	ctx      context.Context
	prompter ports.Prompter
}

func NewRunContext(ctx context.Context) RunContext {
	return RunContext{ctx: ctx}
}

func (r RunContext) Context() context.Context {
	return r.ctx
}

// Prompter is nil during planning and in non-interactive runs.
func (r RunContext) Prompter() ports.Prompter {
	return r.prompter
}

func (r RunContext) WithPrompter(p ports.Prompter) RunContext {
	r.prompter = p
	return r
}

// Logger returns the logger attached to the underlying context, or nil.
func (r RunContext) Logger() ports.Logger {
	return ports.LoggerFromContext(r.ctx)
}
