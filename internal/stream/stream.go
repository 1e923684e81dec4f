// Package stream drives the endless synthetic feeds.
//
// A Driver owns one client's feed: its counters, its random source and its
// pacing. It emits records into a Sink until the sink fails (the client went
// away), the context is cancelled, or a bounded run finishes.
package stream

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// ErrUnknownFeed is returned by New for a feed name that has no driver
var ErrUnknownFeed = errors.New("unknown feed")

// Sink receives the records produced by a driver.
// A non-nil error means the consumer is gone and the driver must stop.
type Sink interface {
	Send(ctx context.Context, record any) error
}

// SinkFunc adapts a plain function to Sink
type SinkFunc func(ctx context.Context, record any) error

// Send calls f
func (f SinkFunc) Send(ctx context.Context, record any) error {
	return f(ctx, record)
}

// Driver produces one feed
type Driver interface {
	Run(ctx context.Context, sink Sink) error
}

// Pacing is the delay range between two emissions. Min == Max means a fixed delay.
type Pacing struct {
	Min time.Duration
	Max time.Duration
}

// Fixed returns a pacing with no jitter
func Fixed(d time.Duration) Pacing {
	return Pacing{Min: d, Max: d}
}

// Next samples a delay in [Min, Max]
func (p Pacing) Next(rng *rand.Rand) time.Duration {
	if p.Max <= p.Min {
		return p.Min
	}
	return p.Min + time.Duration(rng.Int64N(int64(p.Max-p.Min)+1))
}

// Sleep waits for d or until ctx is done, whichever comes first.
// The timer is always released.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// forever emits next() then waits, until the sink or the context stops it
func forever(ctx context.Context, sink Sink, rng *rand.Rand, pacing Pacing, next func() any) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sink.Send(ctx, next()); err != nil {
			return err
		}
		if err := Sleep(ctx, pacing.Next(rng)); err != nil {
			return err
		}
	}
}
