package execution

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
)

// Planner generates a Plan from a StepGraph without applying anything.
// Every step is probed, even when a dependency still needs applying, so the
// plan shows the full picture of a fresh machine.
type Planner struct{}

// NewPlanner creates a new Planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan probes each step in stable topological order.
// A probe error marks the entry unknown instead of aborting the plan.
func (p *Planner) Plan(ctx context.Context, graph *compiler.StepGraph) (*Plan, error) {
	plan := NewPlan()

	steps, err := graph.TopologicalSort()
	if err != nil {
		return nil, fmt.Errorf("failed to sort steps: %w", err)
	}

	runCtx := compiler.NewRunContext(ctx)

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return plan, err
		}
		entry, err := p.planStep(step, runCtx)
		if err != nil {
			return nil, fmt.Errorf("failed to plan step %q: %w", step.ID().String(), err)
		}
		plan.Add(entry)
	}

	return plan, nil
}

// planStep checks a single step and generates a PlanEntry.
func (p *Planner) planStep(step compiler.Step, ctx compiler.RunContext) (PlanEntry, error) {
	id := step.ID().String()
	lc, err := NewLifecycle(id)
	if err != nil {
		return PlanEntry{}, err
	}
	defer lc.Stop()

	exp := step.Explain()

	_ = lc.Fire(EventProbe)
	status, err := step.Check(ctx)
	if err != nil || status == compiler.StatusUnknown {
		_ = lc.Fire(EventFail)
		var probeErr error
		if err != nil {
			probeErr = compiler.NewProbeInconclusiveError(id, err)
		}
		return NewPlanEntry(step, compiler.StatusUnknown, compiler.Diff{}).
			WithError(probeErr).
			WithExplanation(exp), nil
	}

	if status == compiler.StatusSatisfied {
		_ = lc.Fire(EventSatisfied)
		return NewPlanEntry(step, status, compiler.Diff{}), nil
	}

	_ = lc.Fire(EventPlan)
	diff, err := step.Plan(ctx)
	if err != nil {
		return PlanEntry{}, fmt.Errorf("plan failed: %w", err)
	}

	return NewPlanEntry(step, compiler.StatusNeedsApply, diff).WithExplanation(exp), nil
}
