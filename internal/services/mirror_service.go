package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/stream"
)

// MirrorService runs one server-side driver per configured feed and hands every
// record, encoded, to the MQTT publisher through FrameChan
type MirrorService struct {
	dropTimeout time.Duration

	// Output channel (written by mirror drivers, read by the publisher)
	FrameChan chan *models.FeedFrame

	// Fixed at construction; sessions synchronise their own state
	sessions map[string]*stream.Session
}

// MirrorServiceConfig holds configuration for the mirror service
type MirrorServiceConfig struct {
	Feeds       []string
	Options     stream.Options
	ChannelSize int           // Size of the frame channel
	DropTimeout time.Duration // How long a frame may wait for the publisher
}

// DefaultMirrorServiceConfig returns default configuration
func DefaultMirrorServiceConfig() MirrorServiceConfig {
	return MirrorServiceConfig{
		Feeds:       []string{stream.FeedMetrics},
		Options:     stream.DefaultOptions(),
		ChannelSize: 100,
		DropTimeout: 1 * time.Second,
	}
}

// NewMirrorService creates a mirror service; every feed must be known
func NewMirrorService(config MirrorServiceConfig) (*MirrorService, error) {
	sessions := make(map[string]*stream.Session, len(config.Feeds))
	for _, feed := range config.Feeds {
		if _, dup := sessions[feed]; dup {
			continue
		}
		session, err := stream.NewSession(feed, config.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to create mirror for feed %q: %w", feed, err)
		}
		sessions[feed] = session
	}

	return &MirrorService{
		dropTimeout: config.DropTimeout,
		FrameChan:   make(chan *models.FeedFrame, config.ChannelSize),
		sessions:    sessions,
	}, nil
}

// Start runs every mirror driver until the context is cancelled, then closes FrameChan
func (ms *MirrorService) Start(ctx context.Context) {
	log.Printf("MirrorService: Starting %d feed(s)...", len(ms.sessions))

	var wg sync.WaitGroup
	for feed, session := range ms.sessions {
		wg.Add(1)
		go func(feed string, session *stream.Session) {
			defer wg.Done()
			state := session.Run(ctx, ms.sinkFor(feed))
			log.Printf("MirrorService: Feed %s %s after %d frames", feed, state, session.Frames())
		}(feed, session)
	}

	wg.Wait()
	close(ms.FrameChan)
	log.Println("MirrorService: Shutdown complete")
}

// sinkFor encodes records of one feed onto the shared frame channel
func (ms *MirrorService) sinkFor(feed string) stream.Sink {
	return stream.SinkFunc(func(ctx context.Context, record any) error {
		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal %s record: %w", feed, err)
		}

		frame := &models.FeedFrame{Feed: feed, Timestamp: time.Now().UTC(), Payload: payload}

		// Write to channel (non-blocking with timeout)
		select {
		case ms.FrameChan <- frame:
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(ms.dropTimeout):
			log.Printf("MirrorService: Warning - Frame channel full, dropping %s frame", feed)
		}
		return nil
	})
}

// States returns the lifecycle state of every mirrored feed
func (ms *MirrorService) States() map[string]stream.State {
	states := make(map[string]stream.State, len(ms.sessions))
	for feed, session := range ms.sessions {
		states[feed] = session.State()
	}
	return states
}
