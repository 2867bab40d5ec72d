package winget

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
	"github.com/felixgeelhaar/winprep/internal/domain/config"
	"github.com/felixgeelhaar/winprep/internal/ports"
	"github.com/felixgeelhaar/winprep/internal/provider/commandutil"
	"github.com/felixgeelhaar/winprep/internal/provider/versionutil"
	"github.com/felixgeelhaar/winprep/internal/validation"
)

const (
	wingetCommand = "winget"

	// appInstallerFamily is the package family that ships winget.
	appInstallerFamily = "Microsoft.DesktopAppInstaller_8wekyb3d8bbwe"
)

// winget exit codes that mean the desired state already holds.
const (
	exitUpdateNotApplicable uint32 = 0x8A15002B
	exitAlreadyInstalled    uint32 = 0x8A150061
)

// succeeded reports whether a winget install left the package in place.
// Exit codes are HRESULTs; depending on the platform they arrive sign-extended.
func succeeded(result ports.CommandResult) bool {
	if result.Success() {
		return true
	}
	code := uint32(result.ExitCode) //nolint:gosec // HRESULT bit pattern
	return code == exitUpdateNotApplicable || code == exitAlreadyInstalled
}

// BootstrapStep ensures winget is installed and resolvable.
// It is critical: every package step depends on it.
type BootstrapStep struct {
	installerURL string
	id           compiler.StepID
	inspector    ports.SystemInspector
	runner       ports.CommandRunner
}

// NewBootstrapStep creates a new BootstrapStep.
func NewBootstrapStep(cfg config.Bootstrap, inspector ports.SystemInspector, runner ports.CommandRunner) *BootstrapStep {
	return &BootstrapStep{
		installerURL: cfg.InstallerURL,
		id:           compiler.MustNewStepID(BootstrapID),
		inspector:    inspector,
		runner:       runner,
	}
}

// ID returns the step identifier.
func (s *BootstrapStep) ID() compiler.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *BootstrapStep) DependsOn() []compiler.StepID {
	return nil
}

// Critical marks the bootstrap as run-halting on failure.
func (s *BootstrapStep) Critical() bool {
	return true
}

// Check determines whether winget resolves on the search path.
func (s *BootstrapStep) Check(ctx compiler.RunContext) (compiler.StepStatus, error) {
	return compiler.StatusFromPresence(s.inspector.CommandAvailable(ctx.Context(), wingetCommand))
}

// Plan returns the diff for this step.
func (s *BootstrapStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	source := appInstallerFamily
	if s.installerURL != "" {
		source = s.installerURL
	}
	return compiler.AddDiff("package-manager", wingetCommand, source), nil
}

// Apply installs App Installer through PowerShell.
func (s *BootstrapStep) Apply(ctx compiler.RunContext) error {
	if s.installerURL != "" {
		if err := validation.ValidateURL(s.installerURL); err != nil {
			return fmt.Errorf("invalid installer URL: %w", err)
		}
	}

	args := s.args()
	result, err := s.runner.Run(ctx.Context(), "powershell", args...)
	if err != nil {
		return fmt.Errorf("failed to run powershell Add-AppxPackage: %w", err)
	}
	if !result.Success() {
		return fmt.Errorf("powershell Add-AppxPackage exited with code %d: %s",
			result.ExitCode, commandutil.FirstLine(result.Output()))
	}
	return nil
}

func (s *BootstrapStep) args() []string {
	script := "Add-AppxPackage -RegisterByFamilyName -MainPackage " + appInstallerFamily
	if s.installerURL != "" {
		script = "Add-AppxPackage -Path " + commandutil.PowerShellQuote(s.installerURL)
	}
	return []string{"-NoProfile", "-NonInteractive", "-Command", script}
}

// Explain describes the bootstrap step.
func (s *BootstrapStep) Explain() compiler.Explanation {
	return compiler.Explanation{
		Title:       "Install Windows Package Manager",
		Detail:      "Registers App Installer, which provides winget. Every package step depends on it.",
		Link:        "https://learn.microsoft.com/en-us/windows/package-manager/winget/#install-winget",
		Remediation: commandutil.Format("powershell", s.args()...),
	}
}

// PackageStep represents a winget package installation step.
type PackageStep struct {
	pkg       config.Package
	id        compiler.StepID
	inspector ports.SystemInspector
	runner    ports.CommandRunner
}

// NewPackageStep creates a new PackageStep.
func NewPackageStep(pkg config.Package, inspector ports.SystemInspector, runner ports.CommandRunner) *PackageStep {
	return &PackageStep{
		pkg:       pkg,
		id:        PackageID(pkg.Name),
		inspector: inspector,
		runner:    runner,
	}
}

// ID returns the step identifier.
func (s *PackageStep) ID() compiler.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *PackageStep) DependsOn() []compiler.StepID {
	return []compiler.StepID{compiler.MustNewStepID(BootstrapID)}
}

// Check determines if the package is already installed.
// With a command configured the executable must resolve, and meet the
// minimum version when one is set; otherwise winget's package list decides.
func (s *PackageStep) Check(ctx compiler.RunContext) (compiler.StepStatus, error) {
	if s.pkg.Command == "" {
		return compiler.StatusFromPresence(s.inspector.PackageInstalled(ctx.Context(), s.pkg.ID))
	}
	if s.pkg.MinVersion == "" {
		return compiler.StatusFromPresence(s.inspector.CommandAvailable(ctx.Context(), s.pkg.Command))
	}

	found, status, err := s.installedVersion(ctx.Context())
	if err != nil || status != compiler.StatusSatisfied {
		return status, err
	}
	ok, err := versionutil.AtLeast(found, s.pkg.MinVersion)
	if err != nil {
		return compiler.StatusUnknown, fmt.Errorf("comparing %s version %q: %w", s.pkg.Command, found, err)
	}
	if !ok {
		return compiler.StatusNeedsApply, nil
	}
	return compiler.StatusSatisfied, nil
}

func (s *PackageStep) installedVersion(ctx context.Context) (string, compiler.StepStatus, error) {
	version, presence, err := s.inspector.CommandVersion(ctx, s.pkg.Command)
	status, err := compiler.StatusFromPresence(presence, err)
	return version, status, err
}

// Plan returns the diff for this step.
func (s *PackageStep) Plan(ctx compiler.RunContext) (compiler.Diff, error) {
	want := s.pkg.Version
	if want == "" {
		want = "latest"
	}
	if s.pkg.MinVersion != "" {
		if found, status, err := s.installedVersion(ctx.Context()); err == nil && status == compiler.StatusSatisfied {
			return compiler.UpdateDiff("package", s.pkg.ID, found, ">= "+s.pkg.MinVersion), nil
		}
	}
	return compiler.AddDiff("package", s.pkg.ID, want), nil
}

// Apply executes the package installation.
func (s *PackageStep) Apply(ctx compiler.RunContext) error {
	if err := validation.ValidateWingetID(s.pkg.ID); err != nil {
		return fmt.Errorf("invalid package ID: %w", err)
	}
	if s.pkg.Source != "" {
		if err := validation.ValidateWingetSource(s.pkg.Source); err != nil {
			return fmt.Errorf("invalid source: %w", err)
		}
	}
	if s.pkg.Scope != "" {
		if err := validation.ValidateWingetScope(s.pkg.Scope); err != nil {
			return fmt.Errorf("invalid scope: %w", err)
		}
	}

	result, err := s.runner.Run(ctx.Context(), wingetCommand, s.installArgs()...)
	if err != nil {
		return err
	}
	if !succeeded(result) {
		return fmt.Errorf("winget install %s exited with code %d: %s",
			s.pkg.ID, result.ExitCode, commandutil.FirstLine(result.Output()))
	}
	if logger := ctx.Logger(); logger != nil && !result.Success() {
		logger.Info(ctx.Context(), "winget left package unchanged",
			ports.F("package", s.pkg.ID), ports.F("exit_code", result.ExitCode))
	}
	return nil
}

func (s *PackageStep) installArgs() []string {
	args := []string{
		"install", "--id", s.pkg.ID, "--exact",
		"--accept-source-agreements", "--accept-package-agreements", "--silent",
	}
	if s.pkg.Version != "" {
		args = append(args, "--version", s.pkg.Version)
	}
	if s.pkg.Source != "" {
		args = append(args, "--source", s.pkg.Source)
	}
	if s.pkg.Scope != "" {
		args = append(args, "--scope", s.pkg.Scope)
	}
	return args
}

// Explain describes the package install.
func (s *PackageStep) Explain() compiler.Explanation {
	detail := fmt.Sprintf("Installs %s (%s) via Windows Package Manager.", s.pkg.Name, s.pkg.ID)
	if s.pkg.MinVersion != "" {
		detail += fmt.Sprintf(" Requires %s %s or newer.", s.pkg.Command, s.pkg.MinVersion)
	}
	return compiler.Explanation{
		Title:       "Install " + s.pkg.Name,
		Detail:      detail,
		Link:        "https://winstall.app/apps/" + s.pkg.ID,
		Remediation: commandutil.Format(wingetCommand, s.installArgs()...),
	}
}
