package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/winprep/internal/domain/config"
)

// ConfigBuilder builds configurations for tests, starting from the
// built-in default step list.
type ConfigBuilder struct {
	cfg *config.Config
}

// NewConfigBuilder creates a builder seeded with config.Default.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{cfg: config.Default()}
}

// Empty drops every package and extension and disables the GitHub login.
func (b *ConfigBuilder) Empty() *ConfigBuilder {
	b.cfg.Packages = []config.Package{}
	b.cfg.Editor.Extensions = []string{}
	b.cfg.GitHub.SkipAuth = true
	return b
}

// WithIdentity sets the git identity.
func (b *ConfigBuilder) WithIdentity(name, email string) *ConfigBuilder {
	b.cfg.Identity = config.Identity{Name: name, Email: email}
	return b
}

// WithPackage appends a package.
func (b *ConfigBuilder) WithPackage(pkg config.Package) *ConfigBuilder {
	b.cfg.Packages = append(b.cfg.Packages, pkg)
	return b
}

// WithGitSetting adds a global git setting.
func (b *ConfigBuilder) WithGitSetting(key, value string) *ConfigBuilder {
	if b.cfg.Git.Settings == nil {
		b.cfg.Git.Settings = make(map[string]string)
	}
	b.cfg.Git.Settings[key] = value
	return b
}

// WithExtensions replaces the editor extensions.
func (b *ConfigBuilder) WithExtensions(ids ...string) *ConfigBuilder {
	b.cfg.Editor.Extensions = append([]string{}, ids...)
	return b
}

// SkipAuth disables the GitHub CLI login step.
func (b *ConfigBuilder) SkipAuth() *ConfigBuilder {
	b.cfg.GitHub.SkipAuth = true
	return b
}

// Build returns a copy of the configuration.
func (b *ConfigBuilder) Build() *config.Config {
	return b.cfg.Clone()
}

// YAML renders the configuration as a YAML document.
func (b *ConfigBuilder) YAML(t testing.TB) string {
	t.Helper()

	out, err := yaml.Marshal(b.cfg)
	require.NoError(t, err, "failed to marshal config")
	return string(out)
}

// WriteYAML writes the configuration to a temp winprep.yaml and returns its path.
func (b *ConfigBuilder) WriteYAML(t testing.TB) string {
	t.Helper()
	return WriteConfig(t, "winprep.yaml", b.YAML(t))
}
