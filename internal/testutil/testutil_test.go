package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
	"github.com/felixgeelhaar/winprep/internal/domain/config"
	"github.com/felixgeelhaar/winprep/internal/domain/execution"
)

func TestFixturesLoad(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"full.yaml", "full.toml"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.NewLoader().Load(FixtureConfig(t, name))
			require.NoError(t, err)
			assert.Equal(t, "Ada Lovelace", cfg.Identity.Name)
			assert.Equal(t, "main", cfg.Git.Settings["init.defaultBranch"])
		})
	}
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	p := WriteConfig(t, "winprep.yaml", "identity: {}\n")
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "identity: {}\n", string(data))
}

func TestConfigBuilder_RoundTripsThroughLoader(t *testing.T) {
	t.Parallel()

	b := NewConfigBuilder().
		Empty().
		WithIdentity("Ada Lovelace", "ada@example.com").
		WithPackage(config.Package{Name: "git", ID: "Git.Git", Command: "git"}).
		WithGitSetting("init.defaultBranch", "main").
		WithExtensions("golang.go")

	cfg, err := config.NewLoader().Load(b.WriteYAML(t))
	require.NoError(t, err)

	want := b.Build()
	assert.Equal(t, want.Identity, cfg.Identity)
	assert.Equal(t, want.Packages, cfg.Packages)
	assert.Equal(t, want.Git.Settings, cfg.Git.Settings)
	assert.Equal(t, []string{"golang.go"}, cfg.Editor.Extensions)
	assert.True(t, cfg.GitHub.SkipAuth)
}

func TestConfigBuilder_BuildReturnsCopy(t *testing.T) {
	t.Parallel()

	b := NewConfigBuilder()
	first := b.Build()
	first.Packages[0].Name = "changed"

	assert.Equal(t, "git", b.Build().Packages[0].Name)
}

func TestReportAssertions(t *testing.T) {
	t.Parallel()

	report := execution.NewReport("run-1")
	report.Add(execution.NewStepResult(compiler.MustNewStepID("winget:bootstrap"), compiler.StatusApplied, nil))
	report.Add(execution.NewStepResult(compiler.MustNewStepID("winget:package:git"), compiler.StatusApplied, nil).
		WithRemediation("winget install --id Git.Git --exact"))

	assert.Equal(t, []string{"winget:bootstrap", "winget:package:git"}, Order(report))
	assert.Equal(t, compiler.StatusApplied, Statuses(report)["winget:package:git"])
	AssertStatus(t, report, "winget:bootstrap", compiler.StatusApplied)
	AssertAllStatus(t, report, compiler.StatusApplied)
	AssertRemediation(t, report, "winget:package:git", "Git.Git")
}
