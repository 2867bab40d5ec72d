//go:build !windows

package environment

import (
	"os"

	"github.com/felixgeelhaar/winprep/internal/ports"
)

// ProcessStore stands in for the registry off Windows: the process PATH is
// the machine scope and the user scope is empty.
type ProcessStore struct{}

// NewStore returns the platform PATH store.
func NewStore() ports.PathStore {
	return ProcessStore{}
}

// ReadPath implements ports.PathStore.
func (ProcessStore) ReadPath(scope ports.PathScope) (string, error) {
	if scope == ports.ScopeMachine {
		return os.Getenv("PATH"), nil
	}
	return "", nil
}
