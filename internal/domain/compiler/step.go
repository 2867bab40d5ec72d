package compiler

// Step represents an idempotent provisioning unit.
// Check is the probe: it must not mutate the system. Apply is only invoked
// when Check reports StatusNeedsApply and every dependency has succeeded.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() StepID

	// DependsOn returns the IDs of steps that must succeed before this one.
	DependsOn() []StepID

	// Check determines whether the desired state already holds.
	// Returns StatusSatisfied if no action is needed, StatusNeedsApply if it is,
	// or StatusUnknown together with an error when the state cannot be determined.
	Check(ctx RunContext) (StepStatus, error)

	// Plan returns the diff describing what Apply would change.
	Plan(ctx RunContext) (Diff, error)

	// Apply brings the system toward the desired state. It may partially succeed.
	Apply(ctx RunContext) error

	// Explain describes the step for people, including a manual remediation.
	Explain() Explanation
}

// CriticalStep marks a foundational step. If it fails, nothing else can
// succeed and the run halts immediately.
type CriticalStep interface {
	Step

	// Critical returns true if a failure of this step must halt the run.
	Critical() bool
}

// IsCritical reports whether a step is critical.
func IsCritical(step Step) bool {
	c, ok := step.(CriticalStep)
	return ok && c.Critical()
}
