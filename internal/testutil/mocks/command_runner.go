// Package mocks provides test doubles for the ports interfaces.
package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/felixgeelhaar/winprep/internal/ports"
)

// CommandRunner is a thread-safe test double for ports.CommandRunner and
// ports.InteractiveRunner.
type CommandRunner struct {
	mu          sync.RWMutex
	results     map[string][]ports.CommandResult
	errors      map[string]error
	hooks       map[string]func()
	interactive map[string]int
	calls       []ports.CommandCall
}

// NewCommandRunner creates a new CommandRunner mock.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{
		results:     make(map[string][]ports.CommandResult),
		errors:      make(map[string]error),
		hooks:       make(map[string]func()),
		interactive: make(map[string]int),
		calls:       make([]ports.CommandCall, 0),
	}
}

// AddResult registers an expected command and its result, replacing any
// previously registered results for the same command.
func (m *CommandRunner) AddResult(command string, args []string, result ports.CommandResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[buildKey(command, args)] = []ports.CommandResult{result}
}

// AddSequence registers results returned on successive calls. The last
// result repeats once the sequence is exhausted.
func (m *CommandRunner) AddSequence(command string, args []string, results ...ports.CommandResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[buildKey(command, args)] = append([]ports.CommandResult(nil), results...)
}

// AddError registers an expected command that should return an error.
func (m *CommandRunner) AddError(command string, args []string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[buildKey(command, args)] = err
}

// OnRun registers fn to run whenever the command is invoked, before its
// result is returned. Tests use it to simulate an installer's side effects.
func (m *CommandRunner) OnRun(command string, args []string, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks[buildKey(command, args)] = fn
}

// AddInteractive registers the exit code of an interactive command.
func (m *CommandRunner) AddInteractive(command string, args []string, exitCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interactive[buildKey(command, args)] = exitCode
}

// Run executes a mock command.
func (m *CommandRunner) Run(_ context.Context, command string, args ...string) (ports.CommandResult, error) {
	key := buildKey(command, args)

	m.mu.Lock()
	m.calls = append(m.calls, ports.CommandCall{Command: command, Args: args})
	hook := m.hooks[key]
	m.mu.Unlock()

	if hook != nil {
		hook()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.errors[key]; ok {
		return ports.CommandResult{}, err
	}

	if seq, ok := m.results[key]; ok && len(seq) > 0 {
		result := seq[0]
		if len(seq) > 1 {
			m.results[key] = seq[1:]
		}
		return result, nil
	}

	return ports.CommandResult{}, fmt.Errorf("no mock result for command: %s %v", command, args)
}

// RunInteractive executes a mock interactive command.
func (m *CommandRunner) RunInteractive(_ context.Context, command string, args ...string) (int, error) {
	key := buildKey(command, args)

	m.mu.Lock()
	m.calls = append(m.calls, ports.CommandCall{Command: command, Args: args})
	hook := m.hooks[key]
	m.mu.Unlock()

	if hook != nil {
		hook()
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.errors[key]; ok {
		return -1, err
	}
	if code, ok := m.interactive[key]; ok {
		return code, nil
	}
	return -1, fmt.Errorf("no mock result for interactive command: %s %v", command, args)
}

// Calls returns all recorded command invocations.
func (m *CommandRunner) Calls() []ports.CommandCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]ports.CommandCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns how many times the exact command line was invoked.
func (m *CommandRunner) CallCount(command string, args ...string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key := buildKey(command, args)
	n := 0
	for _, c := range m.calls {
		if buildKey(c.Command, c.Args) == key {
			n++
		}
	}
	return n
}

// Reset clears all registered results, errors, hooks, and recorded calls.
func (m *CommandRunner) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = make(map[string][]ports.CommandResult)
	m.errors = make(map[string]error)
	m.hooks = make(map[string]func())
	m.interactive = make(map[string]int)
	m.calls = make([]ports.CommandCall, 0)
}

// buildKey creates a unique key for a command and its arguments.
func buildKey(command string, args []string) string {
	return command + ":" + strings.Join(args, ":")
}

var (
	_ ports.CommandRunner     = (*CommandRunner)(nil)
	_ ports.InteractiveRunner = (*CommandRunner)(nil)
)
