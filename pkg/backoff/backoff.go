// Package backoff provides exponential delay calculation between
// retry attempts.
package backoff

import (
	"context"
	"math"
	"time"
)

// Config for exponential backoff. Zero values use defaults sized for
// retrying whole batch lifecycles rather than single requests.
type Config struct {
	Initial time.Duration // default: 5s
	Max     time.Duration // default: 5m
	Factor  float64       // default: 2.0
}

func (c Config) withDefaults() Config {
	if c.Initial <= 0 {
		c.Initial = 5 * time.Second
	}
	if c.Max <= 0 {
		c.Max = 5 * time.Minute
	}
	if c.Factor <= 1 {
		c.Factor = 2.0
	}
	return c
}

// Delay returns the wait before retrying after the given failed
// attempt. Attempt 1 returns Initial, attempt 2 returns
// Initial*Factor, capped at Max.
func (c Config) Delay(attempt int) time.Duration {
	c = c.withDefaults()
	if attempt < 1 {
		return c.Initial
	}
	d := float64(c.Initial) * math.Pow(c.Factor, float64(attempt-1))
	if d > float64(c.Max) {
		return c.Max
	}
	return time.Duration(d)
}

// Sleep waits for d or until the context is cancelled, whichever
// comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
