package mqtt

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"portfolio-backend/internal/models"
)

const publishTimeout = 2 * time.Second

// TokenPublisher is the part of mqtt.Client the publisher needs
type TokenPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Publisher handles MQTT publishing from channels
type Publisher struct {
	client TokenPublisher

	// Input channel (read by publisher, written by the mirror service)
	FrameChan chan *models.FeedFrame

	// Topic pattern
	streamTopic string // e.g., "portfolio/stream/{feed}"
}

// PublisherConfig holds configuration for MQTT publisher
type PublisherConfig struct {
	StreamTopic string // e.g., "portfolio/stream/{feed}"
}

// NewPublisher creates a new MQTT publisher with channels
func NewPublisher(
	client TokenPublisher,
	config PublisherConfig,
	frameChan chan *models.FeedFrame,
) *Publisher {
	return &Publisher{
		client:      client,
		FrameChan:   frameChan,
		streamTopic: config.StreamTopic,
	}
}

// Start begins publishing feed frames from the channel
// Runs until context is cancelled or channel is closed
func (p *Publisher) Start(ctx context.Context) {
	log.Println("MQTT Publisher: Starting...")

	for {
		select {
		case <-ctx.Done():
			log.Println("MQTT Publisher: Context cancelled, shutting down...")
			return

		case frame, ok := <-p.FrameChan:
			if !ok {
				log.Println("MQTT Publisher: Frame channel closed, shutting down...")
				return
			}

			if err := p.publishFrame(frame); err != nil {
				log.Printf("Error publishing %s frame: %v", frame.Feed, err)
			}
		}
	}
}

// publishFrame publishes one encoded record. QoS 0: a lost telemetry tick is not worth a retry.
func (p *Publisher) publishFrame(frame *models.FeedFrame) error {
	topic := FormatTopic(p.streamTopic, frame.Feed)

	token := p.client.Publish(topic, 0, false, frame.Payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("timed out publishing to %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// FormatTopic replaces the {feed} placeholder with the feed name
func FormatTopic(topicPattern, feed string) string {
	return strings.ReplaceAll(topicPattern, "{feed}", feed)
}
