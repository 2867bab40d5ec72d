package ports

import (
	"context"
	"errors"
)

// ErrPromptAborted is returned when the user cancels a prompt (e.g. Ctrl+C in a form).
var ErrPromptAborted = errors.New("prompt aborted by user")

// Prompter asks the user for input. Implementations block until answered.
type Prompter interface {
	// Ask reads a single line of text. An empty answer yields defaultValue.
	Ask(ctx context.Context, question, defaultValue string) (string, error)

	// Confirm asks a yes/no question with default-yes semantics:
	// empty or "y" proceeds, only an explicit "n" declines.
	Confirm(ctx context.Context, question string) (bool, error)
}
