package mocks

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/felixgeelhaar/winprep/internal/ports"
)

// Environment is a fake environment view. Commands registered with
// InstallOnRefresh only become resolvable after Refresh, the way a freshly
// installed executable only appears once PATH is re-read.
type Environment struct {
	mu         sync.RWMutex
	dirs       []string
	commands   map[string]string
	pending    map[string]string
	refreshes  int
	refreshErr error
}

// NewEnvironment creates an Environment whose search path is dirs.
func NewEnvironment(dirs ...string) *Environment {
	return &Environment{
		dirs:     append([]string(nil), dirs...),
		commands: make(map[string]string),
		pending:  make(map[string]string),
	}
}

// AddCommand makes name resolvable immediately.
func (e *Environment) AddCommand(name, path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.commands[strings.ToLower(name)] = path
}

// RemoveCommand makes name unresolvable.
func (e *Environment) RemoveCommand(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.commands, strings.ToLower(name))
}

// InstallOnRefresh makes name resolvable after the next Refresh.
func (e *Environment) InstallOnRefresh(name, path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending[strings.ToLower(name)] = path
}

// SetRefreshError makes Refresh fail with err.
func (e *Environment) SetRefreshError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.refreshErr = err
}

// Refreshes returns how many times Refresh was called.
func (e *Environment) Refreshes() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.refreshes
}

// Path returns the fake search path.
func (e *Environment) Path() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.dirs...)
}

// LookPath resolves a registered command.
func (e *Environment) LookPath(name string) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if p, ok := e.commands[strings.ToLower(name)]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %s", exec.ErrNotFound, name)
}

// Refresh promotes pending commands.
func (e *Environment) Refresh(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.refreshes++
	if e.refreshErr != nil {
		return e.refreshErr
	}
	for name, p := range e.pending {
		e.commands[name] = p
	}
	e.pending = make(map[string]string)
	return nil
}

var _ ports.Environment = (*Environment)(nil)
