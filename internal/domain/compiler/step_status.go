package compiler

// StepStatus is either a probe answer (satisfied, needs-apply, unknown)
// or the outcome a run records for a step.
type StepStatus string

// Probe answers.
const (
	StatusSatisfied  StepStatus = "satisfied"
	StatusNeedsApply StepStatus = "needs-apply"
	StatusUnknown    StepStatus = "unknown"
)

// Run outcomes. A skipped step had a dependency that did not succeed; a
// declined step was refused at a confirmation prompt.
const (
	StatusNotRun   StepStatus = "not-run"
	StatusApplied  StepStatus = "applied"
	StatusFailed   StepStatus = "failed"
	StatusSkipped  StepStatus = "skipped"
	StatusDeclined StepStatus = "declined"
)

func (s StepStatus) String() string {
	return string(s)
}

// Succeeded reports whether the desired state holds after the run.
func (s StepStatus) Succeeded() bool {
	return s == StatusSatisfied || s == StatusApplied
}

// CountsAsFailure reports whether s makes the run exit non-zero.
// Declined steps are warnings only.
func (s StepStatus) CountsAsFailure() bool {
	return s == StatusFailed || s == StatusSkipped
}

// NeedsAction reports whether a plan or report should draw attention to s.
func (s StepStatus) NeedsAction() bool {
	return s == StatusNeedsApply || s == StatusUnknown || s == StatusFailed
}

// IsTerminal reports whether s is a final outcome.
func (s StepStatus) IsTerminal() bool {
	switch s {
	case StatusSatisfied, StatusApplied, StatusFailed, StatusSkipped, StatusDeclined:
		return true
	default:
		return false
	}
}
