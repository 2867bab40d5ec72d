package execution

import (
	"slices"

	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
)

// PlanEntry is the dry-run verdict for one step: what its probe found and,
// when something is missing, what applying it would change.
type PlanEntry struct {
	step        compiler.Step
	status      compiler.StepStatus
	diff        compiler.Diff
	err         error
	explanation compiler.Explanation
}

// NewPlanEntry creates a PlanEntry.
func NewPlanEntry(step compiler.Step, status compiler.StepStatus, diff compiler.Diff) PlanEntry {
	return PlanEntry{step: step, status: status, diff: diff}
}

func (e PlanEntry) Step() compiler.Step         { return e.step }
func (e PlanEntry) Status() compiler.StepStatus { return e.status }
func (e PlanEntry) Diff() compiler.Diff         { return e.diff }

// Error is the probe failure behind an unknown status.
func (e PlanEntry) Error() error { return e.err }

// Explanation describes a step that is not yet satisfied. It is empty for
// satisfied steps.
func (e PlanEntry) Explanation() compiler.Explanation { return e.explanation }

// Remediation is the command that would fix the step by hand.
func (e PlanEntry) Remediation() string { return e.explanation.Remediation }

// WithError returns a copy carrying the probe failure.
func (e PlanEntry) WithError(err error) PlanEntry {
	e.err = err
	return e
}

// WithExplanation returns a copy carrying the step's explanation.
func (e PlanEntry) WithExplanation(exp compiler.Explanation) PlanEntry {
	e.explanation = exp
	return e
}

// PlanSummary counts plan entries by probe outcome.
type PlanSummary struct {
	Total      int
	NeedsApply int
	Satisfied  int
	Unknown    int
}

// UpToDate reports whether every step was confirmed satisfied.
func (s PlanSummary) UpToDate() bool {
	return s.NeedsApply == 0 && s.Unknown == 0
}

// Plan holds one entry per step in execution order. It is built by the
// Planner and never mutates the machine.
type Plan struct {
	entries []PlanEntry
	summary PlanSummary
}

// NewPlan creates an empty Plan.
func NewPlan() *Plan {
	return &Plan{}
}

// Add appends entry and updates the summary.
func (p *Plan) Add(entry PlanEntry) {
	p.entries = append(p.entries, entry)
	p.summary.Total++
	switch entry.status {
	case compiler.StatusNeedsApply:
		p.summary.NeedsApply++
	case compiler.StatusSatisfied:
		p.summary.Satisfied++
	case compiler.StatusUnknown:
		p.summary.Unknown++
	}
}

func (p *Plan) Len() int      { return len(p.entries) }
func (p *Plan) IsEmpty() bool { return len(p.entries) == 0 }

// Entries returns a copy of the entries in execution order.
func (p *Plan) Entries() []PlanEntry {
	return slices.Clone(p.entries)
}

// Pending returns the entries whose steps would be applied.
func (p *Plan) Pending() []PlanEntry {
	var pending []PlanEntry
	for _, e := range p.entries {
		if e.status == compiler.StatusNeedsApply {
			pending = append(pending, e)
		}
	}
	return pending
}

// HasChanges reports whether any step would be applied.
func (p *Plan) HasChanges() bool {
	return p.summary.NeedsApply > 0
}

// Summary returns the per-status counts.
func (p *Plan) Summary() PlanSummary {
	return p.summary
}
