package git

import (
	"fmt"

	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
	"github.com/felixgeelhaar/winprep/internal/ports"
	"github.com/felixgeelhaar/winprep/internal/provider/commandutil"
	"github.com/felixgeelhaar/winprep/internal/validation"
)

// ConfigStep sets one global git configuration key.
type ConfigStep struct {
	key       string
	value     string
	id        compiler.StepID
	deps      []compiler.StepID
	inspector ports.SystemInspector
	runner    ports.CommandRunner
}

// NewConfigStep creates a new ConfigStep. deps is usually the git package step.
func NewConfigStep(key, value string, deps []compiler.StepID, inspector ports.SystemInspector, runner ports.CommandRunner) *ConfigStep {
	return &ConfigStep{
		key:       key,
		value:     value,
		id:        StepID(key),
		deps:      deps,
		inspector: inspector,
		runner:    runner,
	}
}

// StepID returns the ID of the step that owns key.
func StepID(key string) compiler.StepID {
	return compiler.MustNewStepID("git:config:" + compiler.SanitizeSegment(key))
}

// ID returns the step identifier.
func (s *ConfigStep) ID() compiler.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *ConfigStep) DependsOn() []compiler.StepID {
	return s.deps
}

// Check compares the current global value with the desired one.
func (s *ConfigStep) Check(ctx compiler.RunContext) (compiler.StepStatus, error) {
	current, presence, err := s.inspector.GlobalGitConfig(ctx.Context(), s.key)
	status, err := compiler.StatusFromPresence(presence, err)
	if err != nil || status == compiler.StatusNeedsApply {
		return status, err
	}
	if current != s.value {
		return compiler.StatusNeedsApply, nil
	}
	return compiler.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *ConfigStep) Plan(ctx compiler.RunContext) (compiler.Diff, error) {
	current, presence, err := s.inspector.GlobalGitConfig(ctx.Context(), s.key)
	if err == nil && presence == ports.PresencePresent {
		return compiler.UpdateDiff("gitconfig", s.key, current, s.value), nil
	}
	return compiler.AddDiff("gitconfig", s.key, s.value), nil
}

// Apply writes the value with git config --global.
func (s *ConfigStep) Apply(ctx compiler.RunContext) error {
	if err := validation.ValidateGitConfigKey(s.key); err != nil {
		return fmt.Errorf("invalid git config key: %w", err)
	}
	if err := validation.ValidateGitConfigValue(s.value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", s.key, err)
	}

	result, err := s.runner.Run(ctx.Context(), "git", s.args()...)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("git config %s exited with code %d: %s",
			s.key, result.ExitCode, commandutil.FirstLine(result.Output()))
	}
	return nil
}

func (s *ConfigStep) args() []string {
	return []string{"config", "--global", s.key, s.value}
}

// Explain describes the setting; the remediation is the git command itself.
func (s *ConfigStep) Explain() compiler.Explanation {
	return compiler.Explanation{
		Title:       "Set git " + s.key,
		Detail:      fmt.Sprintf("Sets %s in the global git configuration.", s.key),
		Link:        "https://git-scm.com/docs/git-config#Documentation/git-config.txt-" + s.key,
		Remediation: commandutil.Format("git", s.args()...),
	}
}
