package poller

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds how long a command is polled. Zero MaxAttempts and
// MaxDuration poll until the relayer reports execution.
type Policy struct {
	MaxAttempts     int
	MaxDuration     time.Duration
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// DefaultPolicy polls every 5 seconds without a limit
func DefaultPolicy() Policy {
	return Policy{
		InitialInterval: 5 * time.Second,
		MaxInterval:     5 * time.Second,
		Multiplier:      1,
	}
}

// Bounded reports whether commands can be given up on
func (p Policy) Bounded() bool {
	return p.MaxAttempts > 0 || p.MaxDuration > 0
}

func (p Policy) newBackOff(clock backoff.Clock) *backoff.ExponentialBackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     p.InitialInterval,
		RandomizationFactor: 0,
		Multiplier:          p.Multiplier,
		MaxInterval:         p.MaxInterval,
		MaxElapsedTime:      p.MaxDuration,
		Stop:                backoff.Stop,
		Clock:               clock,
	}
	if b.InitialInterval <= 0 {
		b.InitialInterval = 5 * time.Second
	}
	if b.MaxInterval < b.InitialInterval {
		b.MaxInterval = b.InitialInterval
	}
	if b.Multiplier < 1 {
		b.Multiplier = 1
	}
	b.Reset()
	return b
}
