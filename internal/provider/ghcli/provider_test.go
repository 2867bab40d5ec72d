package ghcli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
	"github.com/felixgeelhaar/winprep/internal/domain/config"
)

func TestProvider_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ghcli", NewProvider(nil, nil).Name())
}

func TestProvider_CompileDefaults(t *testing.T) {
	t.Parallel()

	steps, err := NewProvider(nil, nil).Compile(compiler.NewCompileContext(config.Default()))

	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "ghcli:auth:github_com", steps[0].ID().String())
	assert.Equal(t, []compiler.StepID{compiler.MustNewStepID("winget:package:github-cli")}, steps[0].DependsOn())
}

func TestProvider_CompileSkipAuth(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.GitHub.SkipAuth = true

	steps, err := NewProvider(nil, nil).Compile(compiler.NewCompileContext(cfg))

	require.NoError(t, err)
	assert.Empty(t, steps)
}
