package ports

import "context"

// PathScope identifies where a persisted PATH value lives.
type PathScope string

const (
	// ScopeMachine is the machine-wide PATH.
	ScopeMachine PathScope = "machine"
	// ScopeUser is the per-user PATH.
	ScopeUser PathScope = "user"
)

// PathStore reads persisted PATH values by scope.
type PathStore interface {
	ReadPath(scope PathScope) (string, error)
}

// Environment is the working view of the process environment that steps
// probe against. Installers mutate the persisted scopes; Refresh pulls those
// changes into the view so new executables become resolvable in-process.
type Environment interface {
	// Path returns the current search path entries, in resolution order.
	Path() []string

	// LookPath resolves an executable name against Path.
	LookPath(name string) (string, error)

	// Refresh recombines the persisted PATH scopes into the working copy.
	Refresh(ctx context.Context) error
}
