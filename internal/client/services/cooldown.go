package services

import "time"

type Action string

const (
	ActionVerification Action = "verification"
	ActionProposal     Action = "proposal"
)

const (
	DefaultVerificationCooldown = 3000 * time.Millisecond
	DefaultProposalCooldown     = 5000 * time.Millisecond

	// DefaultSwitchDelay is how long the login success status stays on screen
	// before the game view replaces it.
	DefaultSwitchDelay = 1500 * time.Millisecond
)

// Cooldowns are the minimum gaps between successful actions. They live in
// memory only, so a restart makes every action available again.
type Cooldowns struct {
	Verification time.Duration
	Proposal     time.Duration
}

func DefaultCooldowns() Cooldowns {
	return Cooldowns{
		Verification: DefaultVerificationCooldown,
		Proposal:     DefaultProposalCooldown,
	}
}

func (c Cooldowns) window(a Action) time.Duration {
	if a == ActionProposal {
		return c.Proposal
	}
	return c.Verification
}

// remaining returns how long is left of window after last, measured at now.
// A zero last means the action never succeeded.
func remaining(last time.Time, window time.Duration, now time.Time) time.Duration {
	if last.IsZero() {
		return 0
	}
	left := last.Add(window).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}
