// Package testutil provides fixtures, builders, and assertions shared by
// winprep tests.
package testutil

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// WriteConfig writes content to a file named name in a fresh temp
// directory and returns its path.
func WriteConfig(t testing.TB, name, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600), "failed to write config: %s", name)
	return p
}

// LoadFixture loads a file from the embedded fixtures directory.
func LoadFixture(t testing.TB, name string) []byte {
	t.Helper()

	content, err := fixturesFS.ReadFile(path.Join("fixtures", name))
	require.NoError(t, err, "failed to load fixture: %s", name)
	return content
}

// FixtureConfig copies a fixture into a temp directory, keeping its file
// name so the loader picks the format from the extension.
func FixtureConfig(t testing.TB, name string) string {
	t.Helper()
	return WriteConfig(t, name, string(LoadFixture(t, name)))
}
