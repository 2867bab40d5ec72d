package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	names := make([]string, 0, len(cfg.Packages))
	for _, p := range cfg.Packages {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"git", "github-cli", "vscode", "python", "browser"}, names)

	python, ok := cfg.PackageByName("python")
	require.True(t, ok)
	assert.Equal(t, "Python.Python.3.12", python.ID)
	assert.Equal(t, "3.12", python.MinVersion)

	browser, ok := cfg.PackageByName("browser")
	require.True(t, ok)
	assert.Empty(t, browser.Command)

	assert.Equal(t, DefaultGitPackage, cfg.Git.Package)
	assert.Equal(t, DefaultEditorCommand, cfg.Editor.Command)
	assert.Equal(t, []string{"ms-python.python"}, cfg.Editor.Extensions)
	assert.Equal(t, DefaultGitHubHost, cfg.GitHub.Host)
	assert.False(t, cfg.Identity.IsComplete())
	assert.False(t, cfg.Run.RetryPrompt)

	require.NoError(t, cfg.Validate())
}

func TestDefault_ReturnsFreshCopies(t *testing.T) {
	t.Parallel()

	a := Default()
	a.Packages[0].ID = "Changed.Id"
	a.Editor.Extensions[0] = "changed.ext"

	b := Default()
	assert.Equal(t, "Git.Git", b.Packages[0].ID)
	assert.Equal(t, "ms-python.python", b.Editor.Extensions[0])
}

func TestWithDefaults(t *testing.T) {
	t.Parallel()

	t.Run("empty config becomes default", func(t *testing.T) {
		t.Parallel()
		got := (&Config{}).WithDefaults()
		assert.Equal(t, Default(), got)
	})

	t.Run("present sections are kept", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{
			Packages: []Package{{Name: "git", ID: "Git.Git", Command: "git"}},
			Editor:   Editor{Extensions: []string{}},
			GitHub:   GitHub{Host: "ghe.example.com", SkipAuth: true},
		}

		got := cfg.WithDefaults()

		assert.Len(t, got.Packages, 1)
		assert.Empty(t, got.Editor.Extensions)
		assert.Equal(t, DefaultEditorCommand, got.Editor.Command)
		assert.Equal(t, "ghe.example.com", got.GitHub.Host)
		assert.Equal(t, DefaultGitHubPackage, got.GitHub.Package)
		assert.True(t, got.GitHub.SkipAuth)
	})

	t.Run("does not modify receiver", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}
		_ = cfg.WithDefaults()
		assert.Nil(t, cfg.Packages)
		assert.Empty(t, cfg.GitHub.Host)
	})
}

func TestClone(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Git.Settings["init.defaultBranch"] = "main"

	clone := cfg.Clone()
	clone.Packages[0].Name = "changed"
	clone.Git.Settings["init.defaultBranch"] = "trunk"
	clone.Editor.Extensions = append(clone.Editor.Extensions, "golang.go")

	assert.Equal(t, "git", cfg.Packages[0].Name)
	assert.Equal(t, "main", cfg.Git.Settings["init.defaultBranch"])
	assert.Len(t, cfg.Editor.Extensions, 1)
}

func TestPackageByName(t *testing.T) {
	t.Parallel()

	cfg := Default()

	p, ok := cfg.PackageByName("vscode")
	require.True(t, ok)
	assert.Equal(t, "Microsoft.VisualStudioCode", p.ID)

	_, ok = cfg.PackageByName("nonexistent")
	assert.False(t, ok)
}

func TestWithIdentity(t *testing.T) {
	t.Parallel()

	cfg := Default()
	id := Identity{Name: "Ada Lovelace", Email: "ada@example.com"}

	got := cfg.WithIdentity(id)

	assert.Equal(t, id, got.Identity)
	assert.True(t, got.Identity.IsComplete())
	assert.Empty(t, cfg.Identity.Name)
}

func TestIdentity_IsComplete(t *testing.T) {
	t.Parallel()

	assert.False(t, Identity{}.IsComplete())
	assert.False(t, Identity{Name: "Ada"}.IsComplete())
	assert.False(t, Identity{Name: "  ", Email: "ada@example.com"}.IsComplete())
	assert.True(t, Identity{Name: "Ada", Email: "ada@example.com"}.IsComplete())
}
