package execution

import (
	"time"

	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
)

// Exit codes for a finished run.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Summary counts results by final status.
type Summary struct {
	Total     int
	Satisfied int
	Applied   int
	Failed    int
	Skipped   int
	Declined  int
}

// Succeeded returns satisfied plus applied.
func (s Summary) Succeeded() int {
	return s.Satisfied + s.Applied
}

// Report is the ordered outcome of a run.
type Report struct {
	runID      string
	results    []StepResult
	halted     bool
	haltedBy   compiler.StepID
	startedAt  time.Time
	finishedAt time.Time
}

// NewReport creates an empty report for runID.
func NewReport(runID string) *Report {
	return &Report{
		runID:   runID,
		results: make([]StepResult, 0),
	}
}

// RunID returns the correlation ID of the run.
func (r *Report) RunID() string {
	return r.runID
}

// Add appends a result.
func (r *Report) Add(result StepResult) {
	r.results = append(r.results, result)
}

// Results returns results in execution order.
func (r *Report) Results() []StepResult {
	out := make([]StepResult, len(r.results))
	copy(out, r.results)
	return out
}

// Len returns the number of results.
func (r *Report) Len() int {
	return len(r.results)
}

// Result returns the result for id.
func (r *Report) Result(id compiler.StepID) (StepResult, bool) {
	for _, res := range r.results {
		if res.StepID() == id {
			return res, true
		}
	}
	return StepResult{}, false
}

// Halt marks the run as stopped by a failed critical step.
func (r *Report) Halt(by compiler.StepID) {
	r.halted = true
	r.haltedBy = by
}

// Halted reports whether a critical step failure stopped the run.
func (r *Report) Halted() bool {
	return r.halted
}

// HaltedBy returns the critical step that stopped the run.
func (r *Report) HaltedBy() compiler.StepID {
	return r.haltedBy
}

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.finishedAt.IsZero() {
		return 0
	}
	return r.finishedAt.Sub(r.startedAt)
}

// Summary returns aggregate counts.
func (r *Report) Summary() Summary {
	s := Summary{Total: len(r.results)}
	for _, res := range r.results {
		switch res.Status() {
		case compiler.StatusSatisfied:
			s.Satisfied++
		case compiler.StatusApplied:
			s.Applied++
		case compiler.StatusFailed:
			s.Failed++
		case compiler.StatusSkipped:
			s.Skipped++
		case compiler.StatusDeclined:
			s.Declined++
		}
	}
	return s
}

// Failures returns failed and skipped results.
func (r *Report) Failures() []StepResult {
	out := make([]StepResult, 0)
	for _, res := range r.results {
		if res.Status().CountsAsFailure() {
			out = append(out, res)
		}
	}
	return out
}

// Warnings returns declined results.
func (r *Report) Warnings() []StepResult {
	out := make([]StepResult, 0)
	for _, res := range r.results {
		if res.Status() == compiler.StatusDeclined {
			out = append(out, res)
		}
	}
	return out
}

// Success reports whether the run ended without failed or skipped steps.
func (r *Report) Success() bool {
	return !r.halted && len(r.Failures()) == 0
}

// ExitCode returns the process exit status for this report.
func (r *Report) ExitCode() int {
	if r.Success() {
		return ExitSuccess
	}
	return ExitFailure
}
