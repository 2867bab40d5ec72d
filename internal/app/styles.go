package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
)

// Theme colors (Catppuccin Mocha inspired).
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"} // Blue
	colorSuccess = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"} // Green
	colorWarning = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"} // Yellow
	colorError   = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"} // Red
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"} // Overlay0
)

// Styles holds the lipgloss styles used for status lines and summaries.
type Styles struct {
	Title       lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
	Muted       lipgloss.Style
	Remediation lipgloss.Style
}

// DefaultStyles returns the colored styles.
func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Success:     lipgloss.NewStyle().Foreground(colorSuccess),
		Warning:     lipgloss.NewStyle().Foreground(colorWarning),
		Error:       lipgloss.NewStyle().Foreground(colorError),
		Muted:       lipgloss.NewStyle().Foreground(colorMuted),
		Remediation: lipgloss.NewStyle().Foreground(colorPrimary).PaddingLeft(4),
	}
}

// PlainStyles returns styles that render text unchanged apart from padding.
func PlainStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle(),
		Success:     lipgloss.NewStyle(),
		Warning:     lipgloss.NewStyle(),
		Error:       lipgloss.NewStyle(),
		Muted:       lipgloss.NewStyle(),
		Remediation: lipgloss.NewStyle().PaddingLeft(4),
	}
}

// symbol returns the status marker and the style it is drawn in.
func (s Styles) symbol(status compiler.StepStatus) (string, lipgloss.Style) {
	switch status {
	case compiler.StatusSatisfied:
		return "✓", s.Success
	case compiler.StatusApplied:
		return "+", s.Success
	case compiler.StatusNeedsApply:
		return "~", s.Warning
	case compiler.StatusDeclined:
		return "!", s.Warning
	case compiler.StatusSkipped:
		return "-", s.Muted
	case compiler.StatusFailed:
		return "✗", s.Error
	case compiler.StatusUnknown:
		return "?", s.Error
	case compiler.StatusNotRun:
		return " ", s.Muted
	}
	return " ", s.Muted
}
