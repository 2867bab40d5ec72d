package execution

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Phase is a step's position in its lifecycle.
type Phase string

// Lifecycle phases.
const (
	PhaseNotRun    Phase = stateNotRun
	PhaseProbing   Phase = stateProbing
	PhaseApplying  Phase = stateApplying
	PhaseVerifying Phase = stateVerifying
	PhaseSatisfied Phase = stateSatisfied
	PhaseApplied   Phase = stateApplied
	PhaseFailed    Phase = stateFailed
	PhaseSkipped   Phase = stateSkipped
	PhaseDeclined  Phase = stateDeclined
	PhasePending   Phase = statePending
)

const (
	stateNotRun    = "not-run"
	stateProbing   = "probing"
	stateApplying  = "applying"
	stateVerifying = "verifying"
	stateSatisfied = "satisfied"
	stateApplied   = "applied"
	stateFailed    = "failed"
	stateSkipped   = "skipped"
	stateDeclined  = "declined"
	statePending   = "pending"
)

// Lifecycle events.
const (
	EventProbe       = "PROBE"
	EventSkip        = "SKIP"
	EventSatisfied   = "SATISFIED"
	EventUnsatisfied = "UNSATISFIED"
	EventPlan        = "PLAN"
	EventApplied     = "APPLIED"
	EventVerified    = "VERIFIED"
	EventDecline     = "DECLINE"
	EventFail        = "FAIL"
	EventRetry       = "RETRY"
)

// ErrIllegalTransition is returned when an event is not accepted in the current phase.
var ErrIllegalTransition = errors.New("illegal lifecycle transition")

// IsTerminal reports whether no further event is expected in this phase.
// Failed is terminal unless the user asks for a retry.
func (p Phase) IsTerminal() bool {
	switch p {
	case PhaseSatisfied, PhaseApplied, PhaseFailed, PhaseSkipped, PhaseDeclined, PhasePending:
		return true
	}
	return false
}

// lifecycleContext is the statekit machine context.
type lifecycleContext struct {
	StepID string
}

// Lifecycle tracks a single step through
//
//	not-run → probing → satisfied
//	                  → applying → verifying → applied
//	not-run → skipped
//
// with failed reachable from probing, applying and verifying.
type Lifecycle struct {
	stepID  string
	interp  *statekit.Interpreter[lifecycleContext]
	history []Phase
}

// NewLifecycle builds and starts a lifecycle machine for stepID.
func NewLifecycle(stepID string) (*Lifecycle, error) {
	machine, err := statekit.NewMachine[lifecycleContext]("step-lifecycle").
		WithInitial(stateNotRun).
		WithContext(lifecycleContext{StepID: stepID}).
		State(stateNotRun).
		On(EventProbe).Target(stateProbing).
		On(EventSkip).Target(stateSkipped).Done().
		State(stateProbing).
		On(EventSatisfied).Target(stateSatisfied).
		On(EventUnsatisfied).Target(stateApplying).
		On(EventPlan).Target(statePending).
		On(EventFail).Target(stateFailed).Done().
		State(stateApplying).
		On(EventApplied).Target(stateVerifying).
		On(EventDecline).Target(stateDeclined).
		On(EventFail).Target(stateFailed).Done().
		State(stateVerifying).
		On(EventVerified).Target(stateApplied).
		On(EventFail).Target(stateFailed).Done().
		State(stateFailed).
		On(EventRetry).Target(stateApplying).Done().
		State(stateSatisfied).Done().
		State(stateApplied).Done().
		State(stateSkipped).Done().
		State(stateDeclined).Done().
		State(statePending).Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("building lifecycle for %s: %w", stepID, err)
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()

	return &Lifecycle{
		stepID:  stepID,
		interp:  interp,
		history: []Phase{PhaseNotRun},
	}, nil
}

// Phase returns the current phase.
func (l *Lifecycle) Phase() Phase {
	return Phase(l.interp.State().Value)
}

// Fire sends event and returns ErrIllegalTransition if the phase did not change.
func (l *Lifecycle) Fire(event string) error {
	before := l.Phase()
	l.interp.Send(statekit.Event{Type: statekit.EventType(event)})
	after := l.Phase()
	if after == before {
		return fmt.Errorf("%w: %s in phase %s for step %s", ErrIllegalTransition, event, before, l.stepID)
	}
	l.history = append(l.history, after)
	return nil
}

// History returns every phase the step has been in, starting with not-run.
func (l *Lifecycle) History() []Phase {
	out := make([]Phase, len(l.history))
	copy(out, l.history)
	return out
}

// Stop releases the interpreter.
func (l *Lifecycle) Stop() {
	l.interp.Stop()
}
