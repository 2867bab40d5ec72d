package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/winprep/internal/app"
	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
	"github.com/felixgeelhaar/winprep/internal/domain/config"
	"github.com/felixgeelhaar/winprep/internal/domain/execution"
	"github.com/felixgeelhaar/winprep/internal/ports"
)

type fakeProvisioner struct {
	opts       app.Options
	planPath   string
	report     *execution.Report
	plan       *execution.Plan
	err        error
	printed    bool
	loggerSeen ports.Logger
}

func (f *fakeProvisioner) Run(_ context.Context, opts app.Options) (*execution.Report, error) {
	f.opts = opts
	return f.report, f.err
}

func (f *fakeProvisioner) Plan(_ context.Context, path string) (*execution.Plan, error) {
	f.planPath = path
	return f.plan, f.err
}

func (f *fakeProvisioner) PrintPlan(*execution.Plan) {
	f.printed = true
}

// useFake swaps in fake for the duration of the test and resets global flags.
func useFake(t *testing.T, fake *fakeProvisioner) {
	t.Helper()
	orig := newProvisioner
	newProvisioner = func(_ io.Writer, logger ports.Logger) provisionerClient {
		fake.loggerSeen = logger
		return fake
	}
	t.Cleanup(func() {
		newProvisioner = orig
		cfgFile, verbose, yesFlag, logFormat, logLevel, retryPrompt = "", false, false, "text", "", false
		rootCmd.SetArgs(nil)
	})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func reportWith(statuses ...compiler.StepStatus) *execution.Report {
	report := execution.NewReport("run-1")
	for i, s := range statuses {
		id := compiler.MustNewStepID(fmt.Sprintf("winget:package:p%d", i))
		report.Add(execution.NewStepResult(id, s, nil))
	}
	return report
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "winprep", rootCmd.Use)
	assert.True(t, rootCmd.SilenceErrors)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCommand_Flags(t *testing.T) {
	persistent := rootCmd.PersistentFlags()
	for name, def := range map[string]string{"config": "", "verbose": "false", "log-format": "text"} {
		flag := persistent.Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, def, flag.DefValue, name)
	}

	local := rootCmd.Flags()
	for _, name := range []string{"yes", "retry-prompt"} {
		flag := local.Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "false", flag.DefValue, name)
	}
}

func TestRun_PassesOptions(t *testing.T) {
	fake := &fakeProvisioner{report: reportWith(compiler.StatusApplied)}
	useFake(t, fake)

	_, err := execute(t, "--config", "winprep.yaml", "--yes", "--retry-prompt")
	require.NoError(t, err)
	assert.Equal(t, app.Options{ConfigPath: "winprep.yaml", AssumeYes: true, RetryPrompt: true}, fake.opts)
	require.NotNil(t, fake.loggerSeen)
	assert.Equal(t, ports.LevelError, fake.loggerSeen.Level())
}

func TestRun_VerboseLogsDebug(t *testing.T) {
	fake := &fakeProvisioner{report: reportWith(compiler.StatusSatisfied)}
	useFake(t, fake)

	_, err := execute(t, "--verbose", "--log-format", "json")
	require.NoError(t, err)
	assert.Equal(t, ports.LevelDebug, fake.loggerSeen.Level())
}

func TestRun_LogLevelOverridesVerbose(t *testing.T) {
	fake := &fakeProvisioner{report: reportWith(compiler.StatusSatisfied)}
	useFake(t, fake)

	_, err := execute(t, "--verbose", "--log-level", "warn")
	require.NoError(t, err)
	assert.Equal(t, ports.LevelWarn, fake.loggerSeen.Level())
}

func TestRun_InvalidLogLevel(t *testing.T) {
	fake := &fakeProvisioner{report: reportWith(compiler.StatusSatisfied)}
	useFake(t, fake)

	_, err := execute(t, "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --log-level")
	assert.Nil(t, fake.loggerSeen, "the provisioner is never built")
}

func TestRun_IncompleteReport(t *testing.T) {
	tests := []struct {
		name     string
		statuses []compiler.StepStatus
		wantErr  bool
	}{
		{name: "all applied", statuses: []compiler.StepStatus{compiler.StatusApplied, compiler.StatusSatisfied}},
		{name: "declined is a warning", statuses: []compiler.StepStatus{compiler.StatusApplied, compiler.StatusDeclined}},
		{name: "failed", statuses: []compiler.StepStatus{compiler.StatusFailed}, wantErr: true},
		{name: "skipped", statuses: []compiler.StepStatus{compiler.StatusApplied, compiler.StatusSkipped}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useFake(t, &fakeProvisioner{report: reportWith(tt.statuses...)})

			_, err := execute(t, "--yes")
			if tt.wantErr {
				require.ErrorIs(t, err, errIncomplete)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRun_PropagatesErrors(t *testing.T) {
	useFake(t, &fakeProvisioner{err: app.ErrAborted})

	_, err := execute(t)
	require.ErrorIs(t, err, app.ErrAborted)
	assert.Equal(t, "Aborted. Nothing was changed.", formatError(err))
}

func TestRun_InvalidLogFormat(t *testing.T) {
	fake := &fakeProvisioner{report: reportWith()}
	useFake(t, fake)

	_, err := execute(t, "--log-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid --log-format "xml"`)
	assert.Nil(t, fake.loggerSeen)
}

func TestRun_RejectsArguments(t *testing.T) {
	useFake(t, &fakeProvisioner{report: reportWith()})

	_, err := execute(t, "extra")
	require.Error(t, err)
}

func TestPlanCommand(t *testing.T) {
	fake := &fakeProvisioner{plan: execution.NewPlan()}
	useFake(t, fake)

	_, err := execute(t, "plan", "--config", "custom.toml")
	require.NoError(t, err)
	assert.Equal(t, "custom.toml", fake.planPath)
	assert.True(t, fake.printed)
}

func TestPlanCommand_Error(t *testing.T) {
	fake := &fakeProvisioner{err: config.NewConfigNotFoundError("missing.yaml")}
	useFake(t, fake)

	_, err := execute(t, "plan", "--config", "missing.yaml")
	require.Error(t, err)
	assert.True(t, config.IsUserError(err, config.ErrCodeConfigNotFound))
	assert.False(t, fake.printed)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "winprep dev")
	assert.Contains(t, out, "commit: none")
}

func TestFormatError(t *testing.T) {
	t.Run("user error with suggestion", func(t *testing.T) {
		err := fmt.Errorf("failed to load config: %w", config.NewConfigNotFoundError("winprep.yaml"))
		msg := formatError(err)
		assert.Contains(t, msg, "configuration file not found: winprep.yaml (at winprep.yaml)")
		assert.Contains(t, msg, "Suggestion: Check the --config path")
	})

	t.Run("single validation error", func(t *testing.T) {
		list := config.NewErrorList()
		list.Add(config.NewValidationFailedError("identity.email", "invalid").WithSuggestion("Use name@example.com."))
		msg := formatError(fmt.Errorf("failed to load config: %w", list))
		assert.Equal(t, "validation failed for 'identity.email': invalid\n\nSuggestion: Use name@example.com.", msg)
	})

	t.Run("several validation errors", func(t *testing.T) {
		list := config.NewErrorList()
		list.Add(config.NewValidationFailedError("identity.email", "invalid"))
		list.Add(config.NewValidationFailedError("github.host", "invalid"))
		msg := formatError(list)
		assert.Contains(t, msg, "The configuration has 2 problems")
	})

	t.Run("step error", func(t *testing.T) {
		err := fmt.Errorf("failed to compile: %w", compiler.NewCyclicDependencyError([]string{"a:b:c", "a:b:d", "a:b:c"}))
		assert.Contains(t, formatError(err), "[CYCLIC_DEPENDENCY]")
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Equal(t, "boom", formatError(errors.New("boom")))
	})

	t.Run("verbose shows underlying", func(t *testing.T) {
		verbose = true
		t.Cleanup(func() { verbose = false })

		err := config.NewUserError(config.ErrCodeFilePermission, "cannot read configuration file").
			WithUnderlying(errors.New("access is denied"))
		assert.Contains(t, formatError(err), "Technical details: access is denied")
	})
}

func TestPrintErrorTo(t *testing.T) {
	var buf bytes.Buffer
	printErrorTo(&buf, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}
