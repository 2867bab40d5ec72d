package ghcli

import (
	"fmt"

	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
	"github.com/felixgeelhaar/winprep/internal/ports"
	"github.com/felixgeelhaar/winprep/internal/provider/commandutil"
	"github.com/felixgeelhaar/winprep/internal/validation"
)

// AuthStep walks the user through gh auth login for one host.
// The login flow is interactive; its output is not parsed.
type AuthStep struct {
	host        string
	id          compiler.StepID
	deps        []compiler.StepID
	inspector   ports.SystemInspector
	interactive ports.InteractiveRunner
}

// NewAuthStep creates a new AuthStep.
func NewAuthStep(host string, deps []compiler.StepID, inspector ports.SystemInspector, interactive ports.InteractiveRunner) *AuthStep {
	return &AuthStep{
		host:        host,
		id:          compiler.MustNewStepID("ghcli:auth:" + compiler.SanitizeSegment(host)),
		deps:        deps,
		inspector:   inspector,
		interactive: interactive,
	}
}

// ID returns the step identifier.
func (s *AuthStep) ID() compiler.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *AuthStep) DependsOn() []compiler.StepID {
	return s.deps
}

// Check determines whether gh already holds a login for the host.
func (s *AuthStep) Check(ctx compiler.RunContext) (compiler.StepStatus, error) {
	return compiler.StatusFromPresence(s.inspector.Authenticated(ctx.Context(), s.host))
}

// Plan returns the diff for this step.
func (s *AuthStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	return compiler.AddDiff("auth", s.host, "logged in"), nil
}

// Apply confirms with the user, then hands the terminal to gh auth login.
func (s *AuthStep) Apply(ctx compiler.RunContext) error {
	if err := validation.ValidateHostname(s.host); err != nil {
		return fmt.Errorf("invalid host: %w", err)
	}

	if p := ctx.Prompter(); p != nil {
		ok, err := p.Confirm(ctx.Context(), fmt.Sprintf("Log in to %s with the GitHub CLI now?", s.host))
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			return compiler.ErrUserDeclined
		}
	}

	code, err := s.interactive.RunInteractive(ctx.Context(), "gh", s.args()...)
	if err != nil {
		return fmt.Errorf("failed to start gh auth login: %w", err)
	}
	if code != 0 {
		return fmt.Errorf("gh auth login exited with code %d", code)
	}
	return nil
}

func (s *AuthStep) args() []string {
	return []string{"auth", "login", "--hostname", s.host}
}

// Explain describes the login step.
func (s *AuthStep) Explain() compiler.Explanation {
	return compiler.Explanation{
		Title:       "Log in to " + s.host,
		Detail:      fmt.Sprintf("Runs the interactive gh login flow for %s. Declining leaves the rest of the run unaffected.", s.host),
		Link:        "https://cli.github.com/manual/gh_auth_login",
		Remediation: commandutil.Format("gh", s.args()...),
	}
}
