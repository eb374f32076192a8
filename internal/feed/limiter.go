package feed

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces outbound calls. *rate.Limiter satisfies it.
type Limiter interface {
	Wait(ctx context.Context) error
}

// NewIntervalLimiter allows one call per d with a burst of one.
// A non-positive d means no pacing.
func NewIntervalLimiter(d time.Duration) *rate.Limiter {
	if d <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(d), 1)
}

// Pause is a Limiter that holds every call for a fixed duration, counted
// from the call itself rather than from the previous one.
type Pause time.Duration

func (p Pause) Wait(ctx context.Context) error {
	if p <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(time.Duration(p))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
