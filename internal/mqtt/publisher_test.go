package mqtt

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/models"
)

type fakeToken struct {
	err  error
	done chan struct{}
}

func newToken(err error) *fakeToken {
	t := &fakeToken{err: err, done: make(chan struct{})}
	close(t.done)
	return t
}

func (t *fakeToken) Wait() bool { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} { return t.done }
func (t *fakeToken) Error() error { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

type fakeBroker struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (b *fakeBroker) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return newToken(b.err)
}

func (b *fakeBroker) snapshot() []published {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]published(nil), b.msgs...)
}

func TestFormatTopic(t *testing.T) {
	assert.Equal(t, "portfolio/stream/metrics", FormatTopic("portfolio/stream/{feed}", "metrics"))
	assert.Equal(t, "fixed", FormatTopic("fixed", "metrics"))
}

func TestPublisherDrainsChannelUntilClosed(t *testing.T) {
	broker := &fakeBroker{}
	frames := make(chan *models.FeedFrame, 4)
	p := NewPublisher(broker, PublisherConfig{StreamTopic: "portfolio/stream/{feed}"}, frames)

	frames <- &models.FeedFrame{Feed: "metrics", Payload: []byte(`{"cpu":1}`)}
	frames <- &models.FeedFrame{Feed: "3d", Payload: []byte(`{"t":0}`)}
	close(frames)

	done := make(chan struct{})
	go func() {
		p.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher did not stop after channel close")
	}

	msgs := broker.snapshot()
	require.Len(t, msgs, 2)
	assert.Equal(t, "portfolio/stream/metrics", msgs[0].topic)
	assert.Equal(t, byte(0), msgs[0].qos)
	assert.JSONEq(t, `{"cpu":1}`, string(msgs[0].payload))
	assert.Equal(t, "portfolio/stream/3d", msgs[1].topic)
}

func TestPublishFrameReportsBrokerError(t *testing.T) {
	broker := &fakeBroker{err: errors.New("not authorized")}
	p := NewPublisher(broker, PublisherConfig{StreamTopic: "s/{feed}"}, nil)

	err := p.publishFrame(&models.FeedFrame{Feed: "hack", Payload: []byte(`{}`)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s/hack")
}

func TestPublisherStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPublisher(&fakeBroker{}, PublisherConfig{StreamTopic: "s/{feed}"}, make(chan *models.FeedFrame))

	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher ignored cancellation")
	}
}
