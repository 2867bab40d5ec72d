package vscode

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
	"github.com/felixgeelhaar/winprep/internal/ports"
	"github.com/felixgeelhaar/winprep/internal/provider/commandutil"
	"github.com/felixgeelhaar/winprep/internal/validation"
)

// ExtensionStep represents an editor extension installation step.
type ExtensionStep struct {
	editor    string
	extension string
	id        compiler.StepID
	deps      []compiler.StepID
	inspector ports.SystemInspector
	runner    ports.CommandRunner
}

// NewExtensionStep creates a new ExtensionStep. editor is the CLI that
// manages extensions, usually "code".
func NewExtensionStep(editor, extension string, deps []compiler.StepID, inspector ports.SystemInspector, runner ports.CommandRunner) *ExtensionStep {
	return &ExtensionStep{
		editor:    editor,
		extension: extension,
		id:        compiler.MustNewStepID("vscode:extension:" + compiler.SanitizeSegment(strings.ToLower(extension))),
		deps:      deps,
		inspector: inspector,
		runner:    runner,
	}
}

// ID returns the step identifier.
func (s *ExtensionStep) ID() compiler.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *ExtensionStep) DependsOn() []compiler.StepID {
	return s.deps
}

// Check determines if the extension is already installed.
func (s *ExtensionStep) Check(ctx compiler.RunContext) (compiler.StepStatus, error) {
	return compiler.StatusFromPresence(s.inspector.ExtensionInstalled(ctx.Context(), s.editor, s.extension))
}

// Plan returns the diff for this step.
func (s *ExtensionStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	return compiler.AddDiff("extension", s.extension, "latest"), nil
}

// Apply installs the extension.
func (s *ExtensionStep) Apply(ctx compiler.RunContext) error {
	if err := validation.ValidateExtensionID(s.extension); err != nil {
		return fmt.Errorf("invalid extension ID: %w", err)
	}

	result, err := s.runner.Run(ctx.Context(), s.editor, s.args()...)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("%s --install-extension %s exited with code %d: %s",
			s.editor, s.extension, result.ExitCode, commandutil.FirstLine(result.Output()))
	}
	return nil
}

func (s *ExtensionStep) args() []string {
	return []string{"--install-extension", s.extension, "--force"}
}

// Explain describes the extension install.
func (s *ExtensionStep) Explain() compiler.Explanation {
	return compiler.Explanation{
		Title:       "Install extension " + s.extension,
		Detail:      fmt.Sprintf("Installs the %s extension with the %s CLI.", s.extension, s.editor),
		Link:        "https://marketplace.visualstudio.com/items?itemName=" + s.extension,
		Remediation: commandutil.Format(s.editor, s.args()...),
	}
}
