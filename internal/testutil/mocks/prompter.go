package mocks

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/winprep/internal/ports"
)

// Prompter is a scripted test double for ports.Prompter.
// Answers and confirmations are consumed in order. When the script runs
// out, Ask returns the default value and Confirm returns true, matching
// an empty line at a real prompt.
type Prompter struct {
	mu         sync.Mutex
	answers    []string
	confirms   []bool
	askErr     error
	confirmErr error
	questions  []string
	confirmQs  []string
}

// NewPrompter creates a Prompter with an empty script.
func NewPrompter() *Prompter {
	return &Prompter{}
}

// WithAnswers appends scripted Ask answers. An empty answer means "accept the default".
func (p *Prompter) WithAnswers(answers ...string) *Prompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.answers = append(p.answers, answers...)
	return p
}

// WithConfirms appends scripted Confirm answers.
func (p *Prompter) WithConfirms(confirms ...bool) *Prompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirms = append(p.confirms, confirms...)
	return p
}

// WithAskError makes every Ask fail with err.
func (p *Prompter) WithAskError(err error) *Prompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.askErr = err
	return p
}

// WithConfirmError makes every Confirm fail with err.
func (p *Prompter) WithConfirmError(err error) *Prompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirmErr = err
	return p
}

// Ask returns the next scripted answer.
func (p *Prompter) Ask(_ context.Context, question, defaultValue string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.questions = append(p.questions, question)
	if p.askErr != nil {
		return "", p.askErr
	}
	if len(p.answers) == 0 {
		return defaultValue, nil
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// Confirm returns the next scripted confirmation.
func (p *Prompter) Confirm(_ context.Context, question string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.confirmQs = append(p.confirmQs, question)
	if p.confirmErr != nil {
		return false, p.confirmErr
	}
	if len(p.confirms) == 0 {
		return true, nil
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

// Questions returns every question passed to Ask.
func (p *Prompter) Questions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.questions...)
}

// Confirmations returns every question passed to Confirm.
func (p *Prompter) Confirmations() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.confirmQs...)
}

var _ ports.Prompter = (*Prompter)(nil)
