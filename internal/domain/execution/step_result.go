// Package execution runs a compiled step graph: probe, apply, refresh the
// environment view, and verify, one step at a time.
package execution

import (
	"errors"
	"time"

	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
)

// StepResult captures the outcome of executing a single step.
type StepResult struct {
	stepID      compiler.StepID
	status      compiler.StepStatus
	err         error
	duration    time.Duration
	diff        compiler.Diff
	detail      string
	remediation string
	attempts    int
	history     []Phase
}

// NewStepResult creates a new StepResult.
func NewStepResult(stepID compiler.StepID, status compiler.StepStatus, err error) StepResult {
	return StepResult{
		stepID: stepID,
		status: status,
		err:    err,
	}
}

// StepID returns the ID of the step that was executed.
func (r StepResult) StepID() compiler.StepID {
	return r.stepID
}

// Status returns the final status of the step.
func (r StepResult) Status() compiler.StepStatus {
	return r.status
}

// Error returns any error that occurred during execution.
func (r StepResult) Error() error {
	return r.err
}

// Code returns the StepError code of the result's error, or "".
func (r StepResult) Code() compiler.ErrorCode {
	return compiler.CodeOf(r.err)
}

// Duration returns how long the step took to execute.
func (r StepResult) Duration() time.Duration {
	return r.duration
}

// Diff returns the diff that was applied (if any).
func (r StepResult) Diff() compiler.Diff {
	return r.diff
}

// Detail returns the human-readable one-liner for the status line.
func (r StepResult) Detail() string {
	if r.detail != "" {
		return r.detail
	}
	return describeError(r.err)
}

// Remediation returns the manual command the user can run instead.
func (r StepResult) Remediation() string {
	return r.remediation
}

// Attempts returns how many times Apply was invoked.
func (r StepResult) Attempts() int {
	return r.attempts
}

// History returns the lifecycle phases the step went through.
func (r StepResult) History() []Phase {
	return r.history
}

// Success returns true if the step ended satisfied or applied.
func (r StepResult) Success() bool {
	return r.status.Succeeded()
}

// Skipped returns true if the step was skipped.
func (r StepResult) Skipped() bool {
	return r.status == compiler.StatusSkipped
}

// WithDuration returns a new StepResult with duration set.
func (r StepResult) WithDuration(d time.Duration) StepResult {
	r.duration = d
	return r
}

// WithDiff returns a new StepResult with diff set.
func (r StepResult) WithDiff(d compiler.Diff) StepResult {
	r.diff = d
	return r
}

// WithDetail returns a new StepResult with detail set.
func (r StepResult) WithDetail(detail string) StepResult {
	r.detail = detail
	return r
}

// WithRemediation returns a new StepResult with remediation set.
func (r StepResult) WithRemediation(remediation string) StepResult {
	r.remediation = remediation
	return r
}

// WithAttempts returns a new StepResult with the apply attempt count set.
func (r StepResult) WithAttempts(n int) StepResult {
	r.attempts = n
	return r
}

// WithHistory returns a new StepResult with the lifecycle history set.
func (r StepResult) WithHistory(h []Phase) StepResult {
	r.history = h
	return r
}

// describeError renders err without the provider/step prefix of a StepError.
func describeError(err error) string {
	if err == nil {
		return ""
	}
	var stepErr *compiler.StepError
	if errors.As(err, &stepErr) {
		if stepErr.Underlying != nil && !errors.Is(stepErr.Underlying, compiler.ErrUserDeclined) {
			return stepErr.Message + ": " + stepErr.Underlying.Error()
		}
		return stepErr.Message
	}
	return err.Error()
}
