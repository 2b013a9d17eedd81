package game

import (
	"context"
	"time"
)

// Delay is a Pacer that holds every scored row for a fixed duration,
// typically the length of the tile flip animation.
type Delay time.Duration

// Reveal waits for d or until ctx is done.
func (d Delay) Reveal(ctx context.Context, _ int, _ []Status) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(time.Duration(d))
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
