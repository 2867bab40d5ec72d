// Package command provides command execution adapters.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/felixgeelhaar/winprep/internal/ports"
	"github.com/felixgeelhaar/winprep/internal/provider/commandutil"
)

// RealRunner executes external commands. When an environment view is set,
// executables are resolved against it so freshly installed tools are found
// without restarting the process.
type RealRunner struct {
	env    ports.Environment
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewRealRunner creates a RealRunner attached to the process's standard streams.
func NewRealRunner() *RealRunner {
	return &RealRunner{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// WithEnvironment returns a runner that resolves executables through env.
func (r *RealRunner) WithEnvironment(env ports.Environment) *RealRunner {
	c := *r
	c.env = env
	return &c
}

// WithStreams returns a runner whose interactive commands use the given streams.
func (r *RealRunner) WithStreams(stdin io.Reader, stdout, stderr io.Writer) *RealRunner {
	c := *r
	c.stdin = stdin
	c.stdout = stdout
	c.stderr = stderr
	return &c
}

// Run executes a command and captures its output. A non-zero exit is
// reported in the result, not as an error.
func (r *RealRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	cmd, err := r.command(ctx, command, args)
	if err != nil {
		return ports.CommandResult{}, err
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()

	result := ports.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		err = nil
	}
	trace(ctx, command, args, result.ExitCode, time.Since(start), err)
	return result, err
}

// RunInteractive runs a command attached to the terminal and waits for it.
func (r *RealRunner) RunInteractive(ctx context.Context, command string, args ...string) (int, error) {
	cmd, err := r.command(ctx, command, args)
	if err != nil {
		return -1, err
	}
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	start := time.Now()
	err = cmd.Run()

	code := 0
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		code, err = exitErr.ExitCode(), nil
	case err != nil:
		code = -1
	}
	trace(ctx, command, args, code, time.Since(start), err)
	return code, err
}

func (r *RealRunner) command(ctx context.Context, command string, args []string) (*exec.Cmd, error) {
	path := command
	if r.env != nil {
		resolved, err := r.env.LookPath(command)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", command, err)
		}
		path = resolved
	}
	return exec.CommandContext(ctx, path, args...), nil
}

// trace logs a finished command at debug level when ctx carries a logger.
func trace(ctx context.Context, command string, args []string, exitCode int, took time.Duration, err error) {
	logger := ports.LoggerFromContext(ctx)
	if logger == nil {
		return
	}
	fields := []ports.Field{
		ports.F("command", commandutil.Format(command, args...)),
		ports.F("exit_code", exitCode),
		ports.F("duration", took),
	}
	if err != nil {
		fields = append(fields, ports.F("error", err))
	}
	logger.Debug(ctx, "command finished", fields...)
}

// Ensure RealRunner implements the command ports.
var (
	_ ports.CommandRunner     = (*RealRunner)(nil)
	_ ports.InteractiveRunner = (*RealRunner)(nil)
)
