package versionutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"git version 2.47.1.windows.1":   "2.47.1",
		"Python 3.12.4":                  "3.12.4",
		"gh version 2.63.0 (2024-11-27)": "2.63.0",
		"v1.9.25200":                     "1.9.25200",
		"no digits here":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Extract(in), in)
	}
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	v, err := Canonical("3.12")
	require.NoError(t, err)
	assert.Equal(t, "v3.12.0", v)

	v, err = Canonical("v2")
	require.NoError(t, err)
	assert.Equal(t, "v2.0.0", v)

	_, err = Canonical("latest")
	assert.Error(t, err)
}

func TestAtLeast(t *testing.T) {
	t.Parallel()

	tests := []struct {
		found, minimum string
		want           bool
	}{
		{"3.12.4", "3.12", true},
		{"3.12.0", "3.12", true},
		{"3.11.9", "3.12", false},
		{"3.13", "3.12", true},
		{"10.0", "9.9.9", true},
	}
	for _, tt := range tests {
		got, err := AtLeast(tt.found, tt.minimum)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s >= %s", tt.found, tt.minimum)
	}

	_, err := AtLeast("", "3.12")
	assert.Error(t, err)
}
