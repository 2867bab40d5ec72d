package commandutil

import (
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCommandNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"exec ErrNotFound", exec.ErrNotFound, true},
		{"exec error wrapper", &exec.Error{Name: "gh", Err: exec.ErrNotFound}, true},
		{"path error", &os.PathError{Op: "fork/exec", Path: "code", Err: os.ErrNotExist}, true},
		{"other error", errors.New("nope"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, IsCommandNotFound(tt.err))
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "winget install --id Git.Git --exact", Format("winget", "install", "--id", "Git.Git", "--exact"))
	assert.Equal(t, `git config --global user.name "Ada Lovelace"`, Format("git", "config", "--global", "user.name", "Ada Lovelace"))
	assert.Equal(t, `git config --global core.editor ""`, Format("git", "config", "--global", "core.editor", ""))
}

func TestPowerShellQuote(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "'https://example.com/a.msixbundle'", PowerShellQuote("https://example.com/a.msixbundle"))
	assert.Equal(t, "'it''s'", PowerShellQuote("it's"))
}

func TestFirstLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "No installed package found", FirstLine("\n  No installed package found  \nmore"))
	assert.Empty(t, FirstLine("  \n\n"))
}
