package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStepID(t *testing.T) {
	t.Parallel()

	valid := []string{
		"winget:package:git",
		"winget:bootstrap",
		"git:config:user_email",
		"winget:package:github-cli",
		"vscode:extension:owner/name",
		"bootstrap",
	}
	for _, in := range valid {
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			id, err := NewStepID(in)
			require.NoError(t, err)
			assert.Equal(t, in, id.String())
		})
	}

	invalid := map[string]error{
		"":                   ErrEmptyStepID,
		"   ":                ErrEmptyStepID,
		"winget:package:a.b": ErrInvalidStepID,
		"winget install git": ErrInvalidStepID,
		":package:git":       ErrInvalidStepID,
		"winget:package:":    ErrInvalidStepID,
		"winget::git":        ErrInvalidStepID,
		"winget:-package":    ErrInvalidStepID,
	}
	for in, want := range invalid {
		t.Run("invalid "+in, func(t *testing.T) {
			t.Parallel()
			_, err := NewStepID(in)
			assert.ErrorIs(t, err, want)
		})
	}
}

func TestNewStepID_TrimsWhitespace(t *testing.T) {
	t.Parallel()

	a, err := NewStepID(" winget:package:git ")
	require.NoError(t, err)
	b := MustNewStepID("winget:package:git")

	assert.Equal(t, a, b)
	assert.NotEqual(t, b, MustNewStepID("winget:package:python"))
}

func TestStepID_Provider(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "winget", MustNewStepID("winget:package:git").Provider())
	assert.Equal(t, "ghcli", MustNewStepID("ghcli:auth:github_com").Provider())
	assert.Equal(t, "bootstrap", MustNewStepID("bootstrap").Provider())
}

func TestMustNewStepID_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustNewStepID("") })
	assert.PanicsWithValue(t,
		"invalid step ID has spaces: "+ErrInvalidStepID.Error(),
		func() { MustNewStepID("has spaces") })
}

func TestStepID_IsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, StepID{}.IsZero())
	assert.False(t, MustNewStepID("winget:package:git").IsZero())
}

func TestSanitizeSegment(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"user.email":       "user_email",
		"ms-python.python": "ms-python_python",
		"github.com":       "github_com",
		"  git ":           "git",
		".hidden":          "hidden",
		"...":              "x",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			got := SanitizeSegment(in)
			assert.Equal(t, want, got)
			_, err := NewStepID("test:" + got)
			assert.NoError(t, err, "sanitized segment must be a valid step ID segment")
		})
	}
}
