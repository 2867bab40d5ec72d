// Package inspector answers probe questions by querying the workstation's
// tools. Nothing here mutates state.
package inspector

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/winprep/internal/ports"
	"github.com/felixgeelhaar/winprep/internal/provider/commandutil"
	"github.com/felixgeelhaar/winprep/internal/provider/versionutil"
)

// exitNoPackageFound is winget's "no installed package found" HRESULT.
const exitNoPackageFound uint32 = 0x8A150014

// Inspector implements ports.SystemInspector over a CommandRunner and the
// environment view.
type Inspector struct {
	runner ports.CommandRunner
	env    ports.Environment
}

// New creates an Inspector.
func New(runner ports.CommandRunner, env ports.Environment) *Inspector {
	return &Inspector{runner: runner, env: env}
}

// CommandAvailable reports whether name resolves on the environment view.
func (i *Inspector) CommandAvailable(_ context.Context, name string) (ports.Presence, error) {
	if _, err := i.env.LookPath(name); err != nil {
		if commandutil.IsCommandNotFound(err) {
			return ports.PresenceAbsent, nil
		}
		return ports.PresenceIndeterminate, fmt.Errorf("resolving %s: %w", name, err)
	}
	return ports.PresencePresent, nil
}

// CommandVersion runs "<name> --version" and extracts the first dotted version.
func (i *Inspector) CommandVersion(ctx context.Context, name string) (string, ports.Presence, error) {
	presence, err := i.CommandAvailable(ctx, name)
	if presence != ports.PresencePresent {
		return "", presence, err
	}

	result, err := i.runner.Run(ctx, name, "--version")
	if err != nil {
		if commandutil.IsCommandNotFound(err) {
			return "", ports.PresenceAbsent, nil
		}
		return "", ports.PresenceIndeterminate, fmt.Errorf("running %s --version: %w", name, err)
	}
	// A resolvable command that cannot report its version is not a usable
	// install. The Store alias stubs in WindowsApps exit 9009 this way.
	if !result.Success() {
		return "", ports.PresenceAbsent, nil
	}

	// Some tools print their version on stderr.
	version := versionutil.Extract(result.Stdout)
	if version == "" {
		version = versionutil.Extract(result.Stderr)
	}
	if version == "" {
		return "", ports.PresenceIndeterminate, fmt.Errorf("no version found in %s --version output", name)
	}
	return version, ports.PresencePresent, nil
}

// PackageInstalled asks winget whether the exact package ID is installed.
func (i *Inspector) PackageInstalled(ctx context.Context, id string) (ports.Presence, error) {
	result, err := i.runner.Run(ctx, "winget", "list", "--id", id, "--exact", "--accept-source-agreements")
	if err != nil {
		if commandutil.IsCommandNotFound(err) {
			return ports.PresenceAbsent, nil
		}
		return ports.PresenceIndeterminate, fmt.Errorf("running winget list: %w", err)
	}
	if !result.Success() {
		if uint32(result.ExitCode) == exitNoPackageFound { //nolint:gosec // HRESULT bit pattern
			return ports.PresenceAbsent, nil
		}
		return ports.PresenceIndeterminate, fmt.Errorf("winget list --id %s exited with code %d: %s",
			id, result.ExitCode, commandutil.FirstLine(result.Output()))
	}
	if strings.Contains(strings.ToLower(result.Stdout), strings.ToLower(id)) {
		return ports.PresencePresent, nil
	}
	return ports.PresenceAbsent, nil
}

// GlobalGitConfig reads a global git configuration value.
func (i *Inspector) GlobalGitConfig(ctx context.Context, key string) (string, ports.Presence, error) {
	result, err := i.runner.Run(ctx, "git", "config", "--global", "--get", key)
	if err != nil {
		if commandutil.IsCommandNotFound(err) {
			return "", ports.PresenceAbsent, nil
		}
		return "", ports.PresenceIndeterminate, fmt.Errorf("running git config: %w", err)
	}
	switch result.ExitCode {
	case 0:
		return strings.TrimRight(result.Stdout, "\r\n"), ports.PresencePresent, nil
	case 1:
		// Key is not set.
		return "", ports.PresenceAbsent, nil
	default:
		return "", ports.PresenceIndeterminate, fmt.Errorf("git config --get %s exited with code %d: %s",
			key, result.ExitCode, commandutil.FirstLine(result.Output()))
	}
}

// ExtensionInstalled lists the editor's extensions and matches id
// case-insensitively.
func (i *Inspector) ExtensionInstalled(ctx context.Context, editor, id string) (ports.Presence, error) {
	result, err := i.runner.Run(ctx, editor, "--list-extensions")
	if err != nil {
		if commandutil.IsCommandNotFound(err) {
			return ports.PresenceAbsent, nil
		}
		return ports.PresenceIndeterminate, fmt.Errorf("running %s --list-extensions: %w", editor, err)
	}
	if !result.Success() {
		return ports.PresenceIndeterminate, fmt.Errorf("%s --list-extensions exited with code %d: %s",
			editor, result.ExitCode, commandutil.FirstLine(result.Output()))
	}

	for _, line := range strings.Split(result.Stdout, "\n") {
		if strings.EqualFold(strings.TrimSpace(line), id) {
			return ports.PresencePresent, nil
		}
	}
	return ports.PresenceAbsent, nil
}

// Authenticated checks the GitHub CLI login for host. Any non-zero exit
// means there is no usable login.
func (i *Inspector) Authenticated(ctx context.Context, host string) (ports.Presence, error) {
	result, err := i.runner.Run(ctx, "gh", "auth", "status", "--hostname", host)
	if err != nil {
		if commandutil.IsCommandNotFound(err) {
			return ports.PresenceAbsent, nil
		}
		return ports.PresenceIndeterminate, fmt.Errorf("running gh auth status: %w", err)
	}
	if result.Success() {
		return ports.PresencePresent, nil
	}
	return ports.PresenceAbsent, nil
}

// Ensure Inspector implements ports.SystemInspector.
var _ ports.SystemInspector = (*Inspector)(nil)
