package bot

import (
	"math/rand/v2"
	"time"
)

// Backoff holds every delay the loop uses. Send delays carry jitter so the
// account does not message on a detectable cadence; the cool-downs answer
// the three failure classes the loop distinguishes.
type Backoff struct {
	SendDelay  time.Duration
	SendJitter time.Duration
	TickDelay  time.Duration

	FailureCooldown   time.Duration
	TransientCooldown time.Duration
	RateLimitCooldown time.Duration
}

func DefaultBackoff() Backoff {
	return Backoff{
		SendDelay:         25 * time.Second,
		SendJitter:        20 * time.Second,
		TickDelay:         60 * time.Second,
		FailureCooldown:   45 * time.Second,
		TransientCooldown: 2 * time.Minute,
		RateLimitCooldown: 10 * time.Minute,
	}
}

// NextSendDelay returns the base send delay plus a bounded random addition.
func (b Backoff) NextSendDelay() time.Duration {
	if b.SendJitter <= 0 {
		return b.SendDelay
	}
	return b.SendDelay + rand.N(b.SendJitter)
}
