//go:build windows

package environment

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"

	"github.com/felixgeelhaar/winprep/internal/ports"
)

const (
	machineEnvironmentKey = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`
	userEnvironmentKey    = `Environment`
)

// RegistryStore reads the persisted PATH scopes from the registry.
type RegistryStore struct{}

// NewStore returns the platform PATH store.
func NewStore() ports.PathStore {
	return RegistryStore{}
}

// ReadPath returns the expanded Path value of scope. A missing value is "".
func (RegistryStore) ReadPath(scope ports.PathScope) (string, error) {
	root, path := registry.LOCAL_MACHINE, machineEnvironmentKey
	if scope == ports.ScopeUser {
		root, path = registry.CURRENT_USER, userEnvironmentKey
	}

	key, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf("opening %s environment key: %w", scope, err)
	}
	defer key.Close()

	value, _, err := key.GetStringValue("Path")
	if errors.Is(err, registry.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s Path: %w", scope, err)
	}

	expanded, err := registry.ExpandString(value)
	if err != nil {
		return "", fmt.Errorf("expanding %s Path: %w", scope, err)
	}
	return expanded, nil
}
