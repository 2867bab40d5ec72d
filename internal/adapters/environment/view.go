// Package environment maintains the working PATH view that steps resolve
// executables against, and refreshes it from the persisted scopes.
package environment

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/felixgeelhaar/winprep/internal/ports"
)

const defaultPathExt = ".COM;.EXE;.BAT;.CMD"

// View is the process's working copy of PATH.
type View struct {
	mu      sync.RWMutex
	store   ports.PathStore
	dirs    []string
	pathExt []string
	goos    string
	setenv  func(key, value string) error
	stat    func(name string) (os.FileInfo, error)
}

// NewView creates a View seeded from the current process PATH.
func NewView(store ports.PathStore) *View {
	return newView(store, runtime.GOOS, os.Getenv("PATH"), os.Getenv("PATHEXT"), os.Setenv, os.Stat)
}

func newView(store ports.PathStore, goos, path, pathExt string, setenv func(string, string) error, stat func(string) (os.FileInfo, error)) *View {
	v := &View{
		store:  store,
		goos:   goos,
		setenv: setenv,
		stat:   stat,
	}
	v.dirs = v.split(path)
	if goos == "windows" {
		if pathExt == "" {
			pathExt = defaultPathExt
		}
		for _, ext := range strings.Split(pathExt, ";") {
			if ext = strings.TrimSpace(ext); ext != "" {
				v.pathExt = append(v.pathExt, strings.ToLower(ext))
			}
		}
	}
	return v
}

// Path returns the search path entries in resolution order.
func (v *View) Path() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]string, len(v.dirs))
	copy(out, v.dirs)
	return out
}

// LookPath resolves name against the view. On Windows names without an
// extension are tried with every PATHEXT entry.
func (v *View) LookPath(name string) (string, error) {
	v.mu.RLock()
	dirs := v.dirs
	v.mu.RUnlock()

	if strings.ContainsAny(name, `/\`) {
		if p, ok := v.executable(name); ok {
			return p, nil
		}
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}

	for _, dir := range dirs {
		if p, ok := v.executable(filepath.Join(dir, name)); ok {
			return p, nil
		}
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

func (v *View) executable(base string) (string, bool) {
	for _, candidate := range v.candidates(base) {
		info, err := v.stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if v.goos != "windows" && info.Mode()&0o111 == 0 {
			continue
		}
		return candidate, true
	}
	return "", false
}

func (v *View) candidates(base string) []string {
	if v.goos != "windows" {
		return []string{base}
	}
	ext := strings.ToLower(filepath.Ext(base))
	for _, e := range v.pathExt {
		if ext == e {
			return []string{base}
		}
	}
	out := make([]string, 0, len(v.pathExt))
	for _, e := range v.pathExt {
		out = append(out, base+e)
	}
	return out
}

// Refresh recombines the machine and user PATH scopes, machine first,
// and installs the result as the process PATH.
func (v *View) Refresh(_ context.Context) error {
	machine, err := v.store.ReadPath(ports.ScopeMachine)
	if err != nil {
		return fmt.Errorf("reading machine PATH: %w", err)
	}
	user, err := v.store.ReadPath(ports.ScopeUser)
	if err != nil {
		return fmt.Errorf("reading user PATH: %w", err)
	}

	dirs := v.combine(v.split(machine), v.split(user))

	v.mu.Lock()
	v.dirs = dirs
	v.mu.Unlock()

	if err := v.setenv("PATH", strings.Join(dirs, v.separator())); err != nil {
		return fmt.Errorf("updating process PATH: %w", err)
	}
	return nil
}

func (v *View) separator() string {
	if v.goos == "windows" {
		return ";"
	}
	return ":"
}

func (v *View) split(path string) []string {
	out := make([]string, 0)
	for _, dir := range strings.Split(path, v.separator()) {
		if dir = strings.TrimSpace(dir); dir != "" {
			out = append(out, dir)
		}
	}
	return out
}

// combine concatenates scopes and drops duplicates, keeping the first.
// Windows paths compare case-insensitively and ignore a trailing separator.
func (v *View) combine(scopes ...[]string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, scope := range scopes {
		for _, dir := range scope {
			key := strings.TrimRight(dir, `/\`)
			if v.goos == "windows" {
				key = strings.ToLower(key)
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, dir)
		}
	}
	return out
}

// Ensure View implements ports.Environment.
var _ ports.Environment = (*View)(nil)
