package sendproposals

import (
	"context"
	"time"
)

// Pacer decides how long to wait between two consecutive sends.
type Pacer interface {
	Wait(ctx context.Context) error
}

// FixedDelay waits the same duration every time. A zero delay only checks ctx.
type FixedDelay struct {
	Delay time.Duration
}

func (p FixedDelay) Wait(ctx context.Context) error {
	if p.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
