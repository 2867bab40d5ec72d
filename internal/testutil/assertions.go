package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
	"github.com/felixgeelhaar/winprep/internal/domain/execution"
)

// Statuses maps step IDs to their final status.
func Statuses(report *execution.Report) map[string]compiler.StepStatus {
	out := make(map[string]compiler.StepStatus, report.Len())
	for _, r := range report.Results() {
		out[r.StepID().String()] = r.Status()
	}
	return out
}

// Order returns the step IDs in execution order.
func Order(report *execution.Report) []string {
	out := make([]string, 0, report.Len())
	for _, r := range report.Results() {
		out = append(out, r.StepID().String())
	}
	return out
}

// AssertStatus asserts the final status of one step.
func AssertStatus(t testing.TB, report *execution.Report, id string, want compiler.StepStatus) {
	t.Helper()

	r, ok := report.Result(compiler.MustNewStepID(id))
	require.True(t, ok, "step %s not in report", id)
	assert.Equal(t, want, r.Status(), "status of %s: %s", id, r.Detail())
}

// AssertAllStatus asserts that every step in the report ended in want.
func AssertAllStatus(t testing.TB, report *execution.Report, want compiler.StepStatus) {
	t.Helper()

	require.NotZero(t, report.Len(), "report is empty")
	for _, r := range report.Results() {
		assert.Equal(t, want, r.Status(), "status of %s: %s", r.StepID(), r.Detail())
	}
}

// AssertRemediation asserts that a step's manual remediation contains want.
func AssertRemediation(t testing.TB, report *execution.Report, id, want string) {
	t.Helper()

	r, ok := report.Result(compiler.MustNewStepID(id))
	require.True(t, ok, "step %s not in report", id)
	assert.Contains(t, r.Remediation(), want)
}
