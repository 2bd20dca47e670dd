// Package simulate stands in for backend round-trips that do not exist yet.
// Each call waits a fixed delay and honors cancellation.
package simulate

import (
	"context"
	"time"
)

// Wait blocks for d or until ctx is done.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Latency is the delay of one simulated round-trip. It holds no state, so
// one value can serve any number of concurrent requests.
type Latency time.Duration

// Do waits l, then runs fn.
func (l Latency) Do(ctx context.Context, fn func() error) error {
	if err := Wait(ctx, time.Duration(l)); err != nil {
		return err
	}
	return fn()
}
