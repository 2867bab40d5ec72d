// Package prompt implements ports.Prompter for terminals and plain pipes.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/felixgeelhaar/winprep/internal/ports"
)

// New returns a form prompter when stdin is a terminal and a line prompter
// otherwise.
func New() ports.Prompter {
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return NewFormPrompter()
	}
	return NewLinePrompter(os.Stdin, os.Stdout)
}

// LinePrompter reads answers one line at a time.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter reading from in and writing
// questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Ask prints the question and returns the trimmed answer, or defaultValue
// when the answer is empty.
func (p *LinePrompter) Ask(ctx context.Context, question, defaultValue string) (string, error) {
	if defaultValue != "" {
		_, _ = fmt.Fprintf(p.out, "%s [%s]: ", question, defaultValue)
	} else {
		_, _ = fmt.Fprintf(p.out, "%s: ", question)
	}

	answer, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question. Only "n" or "no" declines.
func (p *LinePrompter) Confirm(ctx context.Context, question string) (bool, error) {
	_, _ = fmt.Fprintf(p.out, "%s [Y/n]: ", question)

	answer, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "n", "no":
		return false, nil
	default:
		return true, nil
	}
}

func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		// A final line without a newline still counts as an answer.
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ports.ErrPromptAborted
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// FormPrompter asks questions with huh forms.
type FormPrompter struct {
	accessible bool
}

// NewFormPrompter creates a FormPrompter.
func NewFormPrompter() *FormPrompter {
	return &FormPrompter{}
}

// WithAccessible returns a copy that renders forms in accessible mode,
// which degrades to plain line prompts.
func (p *FormPrompter) WithAccessible(accessible bool) *FormPrompter {
	cp := *p
	cp.accessible = accessible
	return &cp
}

// Ask shows a single input field. An empty answer yields defaultValue.
func (p *FormPrompter) Ask(ctx context.Context, question, defaultValue string) (string, error) {
	var answer string
	input := huh.NewInput().
		Title(question).
		Value(&answer)
	if defaultValue != "" {
		input = input.Placeholder(defaultValue)
	}

	if err := p.run(ctx, input); err != nil {
		return "", err
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// Confirm shows a yes/no field that starts on yes.
func (p *FormPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	answer := true
	confirm := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&answer)

	if err := p.run(ctx, confirm); err != nil {
		return false, err
	}
	return answer, nil
}

func (p *FormPrompter) run(ctx context.Context, field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(p.accessible).
		RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ports.ErrPromptAborted
	}
	return err
}

var (
	_ ports.Prompter = (*LinePrompter)(nil)
	_ ports.Prompter = (*FormPrompter)(nil)
)
