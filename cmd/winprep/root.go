package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/winprep/internal/adapters/logging"
	"github.com/felixgeelhaar/winprep/internal/app"
	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
	"github.com/felixgeelhaar/winprep/internal/domain/config"
	"github.com/felixgeelhaar/winprep/internal/domain/execution"
	"github.com/felixgeelhaar/winprep/internal/ports"
)

// errIncomplete reports a run that finished with failed or skipped steps.
var errIncomplete = errors.New("provisioning did not complete")

var (
	// Global flags
	cfgFile     string
	verbose     bool
	yesFlag     bool
	logFormat   string
	logLevel    string
	retryPrompt bool
)

var rootCmd = &cobra.Command{
	Use:   "winprep",
	Short: "Idempotent Windows developer workstation setup",
	Long: `winprep installs and configures a developer toolchain on this machine:
winget, Git and its identity, the GitHub CLI and its login, VS Code and its
extensions, a Python runtime, and a browser.

Every step checks the machine first and only changes what is missing, so
running winprep again is always safe.`,
	Args:          cobra.NoArgs,
	RunE:          runProvision,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

type provisionerClient interface {
	Run(context.Context, app.Options) (*execution.Report, error)
	Plan(context.Context, string) (*execution.Plan, error)
	PrintPlan(*execution.Plan)
}

var newProvisioner = func(out io.Writer, logger ports.Logger) provisionerClient {
	return app.New(out).WithLogger(logger).WithVerbose(verbose)
}

// Execute runs the root command. Ctrl+C cancels the run before the next step.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file, YAML or TOML (default: built-in step list)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "minimum log level (debug, info, warn, error); overrides --verbose")
	rootCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "skip the initial confirmation")
	rootCmd.Flags().BoolVar(&retryPrompt, "retry-prompt", false, "offer to retry a step after it fails")

	registerFlagCompletions()

	rootCmd.AddCommand(versionCmd)
}

func runProvision(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p := newProvisioner(cmd.OutOrStdout(), logger)
	report, err := p.Run(cmd.Context(), app.Options{
		ConfigPath:  cfgFile,
		AssumeYes:   yesFlag,
		RetryPrompt: retryPrompt,
	})
	if err != nil {
		return err
	}
	if report.ExitCode() != execution.ExitSuccess {
		return errIncomplete
	}
	return nil
}

// newLogger builds the zap-backed logger from the global flags. Without
// --verbose only errors are logged, since status lines already cover the rest.
func newLogger(w io.Writer) (*logging.ZapLogger, error) {
	var jsonFormat bool
	switch logFormat {
	case "text", "":
	case "json":
		jsonFormat = true
	default:
		return nil, fmt.Errorf("invalid --log-format %q: use text or json", logFormat)
	}

	level := ports.LevelError
	if verbose {
		level = ports.LevelDebug
	}
	if logLevel != "" {
		parsed, err := ports.ParseLevel(logLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid --log-level: %w", err)
		}
		level = parsed
	}

	return logging.New(
		logging.WithOutput(w),
		logging.WithLevel(level),
		logging.WithJSONFormat(jsonFormat),
		logging.WithTimestamp(jsonFormat),
	), nil
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var list *config.ErrorList
	if errors.As(err, &list) {
		if list.Len() > 1 {
			return list.Format()
		}
		if list.Len() == 1 {
			err = list.Errors()[0]
		}
	}

	var userErr *config.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" && userErr.Code != config.ErrCodeValidationFailed {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}

	var stepErr *compiler.StepError
	if errors.As(err, &stepErr) {
		return stepErr.Format()
	}

	if errors.Is(err, app.ErrAborted) {
		return "Aborted. Nothing was changed."
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}

// registerFlagCompletions sets up custom completions for global flags.
func registerFlagCompletions() {
	_ = rootCmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{
			"text\tHuman-readable console lines",
			"json\tOne JSON object per line",
		}, cobra.ShellCompDirectiveNoFileComp
	})

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})
}
