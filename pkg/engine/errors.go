package engine

import (
	"errors"
	"fmt"
)

// ErrActivityInProgress is returned when an action or travel is attempted
// while a timed activity is running. One activity at a time; it blocks all
// zone interaction until it resolves.
var ErrActivityInProgress = errors.New("an activity is already in progress")

// ErrUnknownZone is returned when an action references a zone that is not
// in the current location's registry.
var ErrUnknownZone = errors.New("unknown zone")

// ErrUnknownAction is returned for an out-of-range action index.
var ErrUnknownAction = errors.New("unknown action")

// InsufficientFundsError rejects a paid action or travel before any state
// change. The message names the shortfall for the player.
type InsufficientFundsError struct {
	Cost  int
	Money int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need Rp %d, have Rp %d (short Rp %d)", e.Cost, e.Money, e.Shortfall())
}

// Shortfall is how much money the player is missing.
func (e *InsufficientFundsError) Shortfall() int {
	return e.Cost - e.Money
}
