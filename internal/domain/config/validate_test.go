package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationFields(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	var list *ErrorList
	require.ErrorAs(t, err, &list)
	fields := make([]string, 0, list.Len())
	for _, ue := range list.Errors() {
		assert.Equal(t, ErrCodeValidationFailed, ue.Code)
		assert.NotEmpty(t, ue.Suggestion)
		fields = append(fields, ue.Context)
	}
	return fields
}

func TestValidate_Fields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "bad email",
			mutate: func(c *Config) { c.Identity.Email = "not-an-email" },
			field:  "identity.email",
		},
		{
			name:   "multi-line name",
			mutate: func(c *Config) { c.Identity.Name = "Ada\nLovelace" },
			field:  "identity.name",
		},
		{
			name:   "http installer url",
			mutate: func(c *Config) { c.Bootstrap.InstallerURL = "http://aka.ms/getwinget" },
			field:  "bootstrap.installer_url",
		},
		{
			name:   "bad winget id",
			mutate: func(c *Config) { c.Packages[0].ID = "git" },
			field:  "packages[0].id",
		},
		{
			name:   "duplicate package name",
			mutate: func(c *Config) { c.Packages[1].Name = "GIT" },
			field:  "packages[1].name",
		},
		{
			name:   "command with path",
			mutate: func(c *Config) { c.Packages[0].Command = `C:\git\git.exe` },
			field:  "packages[0].command",
		},
		{
			name:   "min version without command",
			mutate: func(c *Config) { c.Packages[4].MinVersion = "120" },
			field:  "packages[4].min_version",
		},
		{
			name:   "malformed min version",
			mutate: func(c *Config) { c.Packages[3].MinVersion = "3.x" },
			field:  "packages[3].min_version",
		},
		{
			name:   "version with whitespace",
			mutate: func(c *Config) { c.Packages[3].Version = "3.12 --force" },
			field:  "packages[3].version",
		},
		{
			name:   "bad source",
			mutate: func(c *Config) { c.Packages[0].Source = "win get" },
			field:  "packages[0].source",
		},
		{
			name:   "bad scope",
			mutate: func(c *Config) { c.Packages[0].Scope = "global" },
			field:  "packages[0].scope",
		},
		{
			name:   "identity key in git config",
			mutate: func(c *Config) { c.Git.Settings["user.email"] = "ada@example.com" },
			field:  "git.config.user.email",
		},
		{
			name:   "bad git key",
			mutate: func(c *Config) { c.Git.Settings["defaultBranch"] = "main" },
			field:  "git.config.defaultBranch",
		},
		{
			name:   "multi-line git value",
			mutate: func(c *Config) { c.Git.Settings["core.editor"] = "code\n[alias]" },
			field:  "git.config.core.editor",
		},
		{
			name:   "bad editor command",
			mutate: func(c *Config) { c.Editor.Command = "code --wait" },
			field:  "editor.command",
		},
		{
			name:   "bad extension",
			mutate: func(c *Config) { c.Editor.Extensions = []string{"python"} },
			field:  "editor.extensions[0]",
		},
		{
			name:   "bad host",
			mutate: func(c *Config) { c.GitHub.Host = "https://github.com" },
			field:  "github.host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)

			fields := validationFields(t, cfg.Validate())
			assert.Equal(t, []string{tt.field}, fields)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Packages[0].ID = "bad"
	cfg.GitHub.Host = ""
	cfg.Editor.Extensions = []string{"x"}

	fields := validationFields(t, cfg.Validate())

	assert.Equal(t, []string{"packages[0].id", "editor.extensions[0]", "github.host"}, fields)
}

func TestValidate_AcceptsOptionalFields(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Identity = Identity{Name: "Ada Lovelace", Email: "ada@example.com"}
	cfg.Bootstrap.InstallerURL = "https://aka.ms/getwinget"
	cfg.Packages[0].Source = "winget"
	cfg.Packages[0].Scope = "machine"
	cfg.Packages[0].Version = "2.47.1"
	cfg.Git.Settings["init.defaultBranch"] = "main"
	cfg.Git.Settings["core.autocrlf"] = "true"
	cfg.Editor.Extensions = nil

	assert.NoError(t, cfg.Validate())
}
