package stream

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync/atomic"
)

// State is the lifecycle position of a session
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Session runs one driver for one consumer and tracks its state and frame count
type Session struct {
	Feed   string
	driver Driver

	state  atomic.Int32
	frames atomic.Int64
}

// NewSession creates an idle session for feed
func NewSession(feed string, opts Options) (*Session, error) {
	driver, err := New(feed, opts, nil)
	if err != nil {
		return nil, err
	}
	return &Session{Feed: strings.ToLower(feed), driver: driver}, nil
}

// State returns the current lifecycle state
func (s *Session) State() State {
	return State(s.state.Load())
}

// Frames returns how many records were delivered to the sink
func (s *Session) Frames() int64 {
	return s.frames.Load()
}

// Run drives the feed into sink until it completes or is cancelled.
// A sink failure is a consumer disconnect and ends the session as cancelled; it is not an error.
func (s *Session) Run(ctx context.Context, sink Sink) State {
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return s.State()
	}

	counted := SinkFunc(func(ctx context.Context, record any) error {
		if err := sink.Send(ctx, record); err != nil {
			return err
		}
		s.frames.Add(1)
		return nil
	})

	err := s.driver.Run(ctx, counted)

	final := StateCompleted
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		final = StateCancelled
		log.Printf("Stream[%s]: client disconnected after %d frames", s.Feed, s.Frames())
	default:
		final = StateCancelled
		log.Printf("Stream[%s]: stopped after %d frames: %v", s.Feed, s.Frames(), err)
	}

	s.state.Store(int32(final))
	return final
}
