package compiler

import (
	"errors"

	"github.com/felixgeelhaar/winprep/internal/ports"
)

// ErrIndeterminate is used when an inspector reports an indeterminate
// presence without saying why.
var ErrIndeterminate = errors.New("state is indeterminate")

// StatusFromPresence maps an inspector answer onto a probe status.
// An indeterminate answer, or any error, becomes StatusUnknown with an error.
func StatusFromPresence(p ports.Presence, err error) (StepStatus, error) {
	if err != nil {
		return StatusUnknown, err
	}
	switch p {
	case ports.PresencePresent:
		return StatusSatisfied, nil
	case ports.PresenceAbsent:
		return StatusNeedsApply, nil
	case ports.PresenceIndeterminate:
		return StatusUnknown, ErrIndeterminate
	}
	return StatusUnknown, ErrIndeterminate
}
