package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/felixgeelhaar/winprep/internal/ports"
)

// Inspector is a fake ports.SystemInspector backed by in-memory state.
// Anything not set is reported absent.
type Inspector struct {
	mu         sync.RWMutex
	commands   map[string]bool
	versions   map[string]string
	packages   map[string]bool
	gitConfig  map[string]string
	extensions map[string]bool
	auth       map[string]bool
	errs       map[string]error
}

// NewInspector creates an Inspector where nothing is present.
func NewInspector() *Inspector {
	return &Inspector{
		commands:   make(map[string]bool),
		versions:   make(map[string]string),
		packages:   make(map[string]bool),
		gitConfig:  make(map[string]string),
		extensions: make(map[string]bool),
		auth:       make(map[string]bool),
		errs:       make(map[string]error),
	}
}

// SetCommand marks an executable as resolvable, optionally with a version.
func (i *Inspector) SetCommand(name, version string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.commands[strings.ToLower(name)] = true
	if version != "" {
		i.versions[strings.ToLower(name)] = version
	}
}

// SetPackage marks a winget package as installed or not.
func (i *Inspector) SetPackage(id string, installed bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.packages[strings.ToLower(id)] = installed
}

// SetGitConfig sets a global git value.
func (i *Inspector) SetGitConfig(key, value string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.gitConfig[strings.ToLower(key)] = value
}

// SetExtension marks an editor extension as installed or not.
func (i *Inspector) SetExtension(editor, id string, installed bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.extensions[extensionKey(editor, id)] = installed
}

// SetAuthenticated marks a GitHub host as logged in or not.
func (i *Inspector) SetAuthenticated(host string, ok bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.auth[strings.ToLower(host)] = ok
}

// SetError makes the named method fail for arg. Method names match the
// SystemInspector methods, e.g. "PackageInstalled".
func (i *Inspector) SetError(method, arg string, err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.errs[method+":"+strings.ToLower(arg)] = err
}

func (i *Inspector) errFor(method, arg string) error {
	return i.errs[method+":"+strings.ToLower(arg)]
}

// CommandAvailable implements ports.SystemInspector.
func (i *Inspector) CommandAvailable(_ context.Context, name string) (ports.Presence, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if err := i.errFor("CommandAvailable", name); err != nil {
		return ports.PresenceIndeterminate, err
	}
	return presence(i.commands[strings.ToLower(name)]), nil
}

// CommandVersion implements ports.SystemInspector.
func (i *Inspector) CommandVersion(_ context.Context, name string) (string, ports.Presence, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if err := i.errFor("CommandVersion", name); err != nil {
		return "", ports.PresenceIndeterminate, err
	}
	if !i.commands[strings.ToLower(name)] {
		return "", ports.PresenceAbsent, nil
	}
	return i.versions[strings.ToLower(name)], ports.PresencePresent, nil
}

// PackageInstalled implements ports.SystemInspector.
func (i *Inspector) PackageInstalled(_ context.Context, id string) (ports.Presence, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if err := i.errFor("PackageInstalled", id); err != nil {
		return ports.PresenceIndeterminate, err
	}
	return presence(i.packages[strings.ToLower(id)]), nil
}

// GlobalGitConfig implements ports.SystemInspector.
func (i *Inspector) GlobalGitConfig(_ context.Context, key string) (string, ports.Presence, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if err := i.errFor("GlobalGitConfig", key); err != nil {
		return "", ports.PresenceIndeterminate, err
	}
	v, ok := i.gitConfig[strings.ToLower(key)]
	if !ok {
		return "", ports.PresenceAbsent, nil
	}
	return v, ports.PresencePresent, nil
}

// ExtensionInstalled implements ports.SystemInspector.
func (i *Inspector) ExtensionInstalled(_ context.Context, editor, id string) (ports.Presence, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if err := i.errFor("ExtensionInstalled", id); err != nil {
		return ports.PresenceIndeterminate, err
	}
	return presence(i.extensions[extensionKey(editor, id)]), nil
}

// Authenticated implements ports.SystemInspector.
func (i *Inspector) Authenticated(_ context.Context, host string) (ports.Presence, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if err := i.errFor("Authenticated", host); err != nil {
		return ports.PresenceIndeterminate, err
	}
	return presence(i.auth[strings.ToLower(host)]), nil
}

func presence(ok bool) ports.Presence {
	if ok {
		return ports.PresencePresent
	}
	return ports.PresenceAbsent
}

func extensionKey(editor, id string) string {
	return strings.ToLower(editor) + "/" + strings.ToLower(id)
}

var _ ports.SystemInspector = (*Inspector)(nil)
