package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandResult_Success(t *testing.T) {
	t.Parallel()

	assert.True(t, CommandResult{ExitCode: 0, Stdout: "output"}.Success())
	assert.False(t, CommandResult{ExitCode: 1, Stderr: "error"}.Success())
}

func TestCommandResult_Output(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "boom", CommandResult{Stdout: "out", Stderr: "boom"}.Output())
	assert.Equal(t, "out", CommandResult{Stdout: "out"}.Output())
	assert.Empty(t, CommandResult{}.Output())
}

func TestPresence_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "present", PresencePresent.String())
	assert.Equal(t, "absent", PresenceAbsent.String())
	assert.Equal(t, "indeterminate", PresenceIndeterminate.String())
	assert.Equal(t, "indeterminate", Presence(42).String())
}
