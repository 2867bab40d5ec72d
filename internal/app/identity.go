package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/winprep/internal/domain/config"
	"github.com/felixgeelhaar/winprep/internal/ports"
	"github.com/felixgeelhaar/winprep/internal/validation"
)

// maxIdentityAttempts bounds the re-ask loop so a closed or scripted input
// cannot spin forever.
const maxIdentityAttempts = 5

// collectIdentity asks for whichever identity fields the configuration
// leaves empty. The current global git value is offered as the default.
func (p *Provisioner) collectIdentity(ctx context.Context, cfg *config.Config) (*config.Config, error) {
	id := cfg.Identity

	if strings.TrimSpace(id.Name) == "" {
		name, err := p.askIdentity(ctx, identityQuestion{
			field:    "identity.name",
			key:      "user.name",
			question: "Your name for git commits",
			validate: validation.ValidateDisplayName,
		})
		if err != nil {
			return nil, err
		}
		id.Name = name
	}

	if strings.TrimSpace(id.Email) == "" {
		email, err := p.askIdentity(ctx, identityQuestion{
			field:    "identity.email",
			key:      "user.email",
			question: "Your e-mail for git commits",
			validate: validation.ValidateEmail,
		})
		if err != nil {
			return nil, err
		}
		id.Email = email
	}

	return cfg.WithIdentity(id), nil
}

type identityQuestion struct {
	field    string
	key      string
	question string
	validate func(string) error
}

func (p *Provisioner) askIdentity(ctx context.Context, q identityQuestion) (string, error) {
	current := p.currentGitValue(ctx, q.key)

	for attempt := 1; attempt <= maxIdentityAttempts; attempt++ {
		answer, err := p.prompter.Ask(ctx, q.question, current)
		if err != nil {
			return "", fmt.Errorf("asking for %s: %w", q.key, err)
		}
		answer = strings.TrimSpace(answer)
		if err := q.validate(answer); err != nil {
			msg := rejectionMessage(err)
			switch left := maxIdentityAttempts - attempt; left {
			case 0:
			case 1:
				msg += " 1 attempt left."
			default:
				msg += fmt.Sprintf(" %d attempts left.", left)
			}
			p.printf("  %s\n", p.styles.Error.Render(msg))
			continue
		}
		return answer, nil
	}

	return "", config.NewValidationFailedError(q.field,
		fmt.Sprintf("no valid answer after %d attempts", maxIdentityAttempts)).
		WithSuggestion(fmt.Sprintf("Set %s in the configuration file.", q.field))
}

// currentGitValue returns the existing global value, or "" when git is not
// installed yet or the key is unset.
func (p *Provisioner) currentGitValue(ctx context.Context, key string) string {
	value, presence, err := p.inspector.GlobalGitConfig(ctx, key)
	if err != nil {
		p.logger.Debug(ctx, "could not read current git value",
			ports.F("key", key),
			ports.F("error", err),
		)
		return ""
	}
	if presence != ports.PresencePresent {
		return ""
	}
	return strings.TrimSpace(value)
}

func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, validation.ErrEmptyInput):
		return "A value is required."
	case errors.Is(err, validation.ErrInvalidEmail):
		return "That is not a valid e-mail address."
	default:
		return "Invalid value: " + err.Error()
	}
}
