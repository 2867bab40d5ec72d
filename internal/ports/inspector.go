package ports

import "context"

// Presence is the tri-state answer to "is this already in place?".
type Presence int

const (
	// PresenceIndeterminate means the state could not be determined.
	PresenceIndeterminate Presence = iota
	// PresenceAbsent means the target is definitely missing.
	PresenceAbsent
	// PresencePresent means the target is in place.
	PresencePresent
)

// String returns the presence name.
func (p Presence) String() string {
	switch p {
	case PresenceAbsent:
		return "absent"
	case PresencePresent:
		return "present"
	case PresenceIndeterminate:
		return "indeterminate"
	}
	return "indeterminate"
}

// SystemInspector answers probe questions about the workstation without
// mutating it. An indeterminate answer is always accompanied by an error.
type SystemInspector interface {
	// CommandAvailable reports whether an executable resolves on the search path.
	CommandAvailable(ctx context.Context, name string) (Presence, error)

	// CommandVersion runs "<name> --version" and extracts the first dotted version.
	CommandVersion(ctx context.Context, name string) (string, Presence, error)

	// PackageInstalled reports whether the package manager lists the package ID.
	PackageInstalled(ctx context.Context, id string) (Presence, error)

	// GlobalGitConfig returns the global git configuration value for key.
	GlobalGitConfig(ctx context.Context, key string) (string, Presence, error)

	// ExtensionInstalled reports whether the editor lists the extension.
	ExtensionInstalled(ctx context.Context, editor, id string) (Presence, error)

	// Authenticated reports whether the GitHub CLI holds a valid login for host.
	Authenticated(ctx context.Context, host string) (Presence, error)
}
