package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a StepError.
type ErrorCode string

// Graph construction.
const (
	ErrCodeProviderFailed    ErrorCode = "PROVIDER_FAILED"
	ErrCodeStepDuplicate     ErrorCode = "STEP_DUPLICATE"
	ErrCodeDependencyMissing ErrorCode = "DEPENDENCY_MISSING"
	ErrCodeCyclicDependency  ErrorCode = "CYCLIC_DEPENDENCY"
)

// Step execution.
const (
	ErrCodeDependencyUnavailable ErrorCode = "DEPENDENCY_UNAVAILABLE"
	ErrCodeProbeInconclusive     ErrorCode = "PROBE_INCONCLUSIVE"
	ErrCodeApplyFailed           ErrorCode = "APPLY_FAILED"
	ErrCodePostconditionMismatch ErrorCode = "POSTCONDITION_MISMATCH"
	ErrCodeUserAborted           ErrorCode = "USER_ABORTED"
)

// ErrUserDeclined is returned by Apply when the user answers "n" to a
// confirmation. The runner records the step as declined rather than failed.
var ErrUserDeclined = errors.New("declined by user")

// StepError is a graph or step failure carrying the manual command that
// would fix it, when one is known.
type StepError struct {
	Code       ErrorCode
	Message    string
	Provider   string
	StepID     string
	Suggestion string
	Underlying error
}

func newStepError(code ErrorCode, stepID, msg string, cause error) *StepError {
	return &StepError{Code: code, Message: msg, StepID: stepID, Underlying: cause}
}

func (e *StepError) Error() string {
	msg := e.Message
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	var subject []string
	if e.Provider != "" {
		subject = append(subject, "provider "+e.Provider)
	}
	if e.StepID != "" {
		subject = append(subject, "step "+e.StepID)
	}
	if len(subject) == 0 {
		return msg
	}
	return strings.Join(subject, " ") + ": " + msg
}

func (e *StepError) Unwrap() error {
	return e.Underlying
}

// Format renders the error for the terminal, one detail per line.
func (e *StepError) Format() string {
	lines := []string{fmt.Sprintf("[%s] %s", e.Code, e.Message)}
	for _, kv := range [][2]string{
		{"provider", e.Provider},
		{"step", e.StepID},
		{"fix", e.Suggestion},
	} {
		if kv[1] != "" {
			lines = append(lines, fmt.Sprintf("  %-9s%s", kv[0]+":", kv[1]))
		}
	}
	if e.Underlying != nil {
		lines = append(lines, fmt.Sprintf("  %-9s%v", "cause:", e.Underlying))
	}
	return strings.Join(lines, "\n")
}

// WithProvider returns a copy with Provider set.
func (e *StepError) WithProvider(provider string) *StepError {
	c := *e
	c.Provider = provider
	return &c
}

// WithSuggestion returns a copy with Suggestion set.
func (e *StepError) WithSuggestion(suggestion string) *StepError {
	c := *e
	c.Suggestion = suggestion
	return &c
}

// WithUnderlying returns a copy wrapping err.
func (e *StepError) WithUnderlying(err error) *StepError {
	c := *e
	c.Underlying = err
	return &c
}

// CodeOf returns the code of the first StepError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Code
	}
	return ""
}

func NewProviderFailedError(provider string, err error) *StepError {
	e := newStepError(ErrCodeProviderFailed, "", "provider failed to compile steps", err)
	e.Provider = provider
	e.Suggestion = fmt.Sprintf("Check the %s section of your configuration.", provider)
	return e
}

func NewStepDuplicateError(stepID string) *StepError {
	return newStepError(ErrCodeStepDuplicate, stepID, "step is defined twice", ErrDuplicateStep).
		WithSuggestion("List each package, git key, and extension once.")
}

func NewDependencyMissingError(stepID, dependsOn string) *StepError {
	return newStepError(ErrCodeDependencyMissing, stepID, fmt.Sprintf("depends on unknown step %s", dependsOn), nil)
}

// NewCyclicDependencyError renders cycle as "a → b → a".
func NewCyclicDependencyError(cycle []string) *StepError {
	return newStepError(ErrCodeCyclicDependency, "", "dependency cycle: "+strings.Join(cycle, " → "), nil)
}

func NewDependencyUnavailableError(stepID, dependency string, status StepStatus) *StepError {
	return newStepError(ErrCodeDependencyUnavailable, stepID, fmt.Sprintf("dependency %s is %s", dependency, status), nil)
}

func NewProbeInconclusiveError(stepID string, err error) *StepError {
	return newStepError(ErrCodeProbeInconclusive, stepID, "could not determine current state", err)
}

func NewApplyFailedError(stepID string, err error) *StepError {
	return newStepError(ErrCodeApplyFailed, stepID, "step failed to apply", err)
}

// NewPostconditionMismatchError records an apply that reported success
// while the probe still does not see the desired state.
func NewPostconditionMismatchError(stepID string, status StepStatus) *StepError {
	return newStepError(ErrCodePostconditionMismatch, stepID,
		fmt.Sprintf("apply reported success but the post-check returned %s", status), nil)
}

func NewUserAbortedError(stepID string) *StepError {
	return newStepError(ErrCodeUserAborted, stepID, "declined at confirmation prompt", ErrUserDeclined)
}
