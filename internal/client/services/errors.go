package services

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrValidation is returned for input rejected before any network call.
	ErrValidation = errors.New("Please enter your Twitter username!")

	ErrNotLoggedIn    = errors.New("not logged in")
	ErrActionInFlight = errors.New("action already in progress")
	ErrLoginRejected  = errors.New("login rejected")
)

// CooldownError reports that an action was attempted before its window
// elapsed. It is informational; nothing was sent and no state changed.
type CooldownError struct {
	Action    Action
	Remaining time.Duration
}

// Seconds is the remaining wait rounded up to whole seconds.
func (e *CooldownError) Seconds() int {
	return int(math.Ceil(e.Remaining.Seconds()))
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("Wait %d seconds before next %s", e.Seconds(), e.Action)
}
