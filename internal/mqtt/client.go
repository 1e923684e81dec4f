package mqtt

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

const disconnectQuiesce = 250 // ms

// ClientConfig holds MQTT client configuration
type ClientConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
}

// ConnectionStatus is what /health reports about the broker link
type ConnectionStatus struct {
	Connected   bool      `json:"connected"`
	Connects    int64     `json:"connects"`
	Losses      int64     `json:"losses"`
	LastError   string    `json:"last_error,omitempty"`
	LastChanged time.Time `json:"last_changed"`
}

// Client owns the broker connection and tracks its connect/lost events.
// Publishing goes through Publisher over GetNativeClient.
type Client struct {
	native   mqtt.Client
	broker   string
	clientID string

	connected atomic.Bool
	connects  atomic.Int64
	losses    atomic.Int64

	mu          sync.Mutex
	lastErr     error
	lastChanged time.Time
}

// NewClient connects to the broker; auto-reconnect keeps the link alive afterwards
func NewClient(config ClientConfig) (*Client, error) {
	c := &Client{
		broker:   config.Broker,
		clientID: uniqueClientID(config.ClientID),
	}
	c.native = mqtt.NewClient(c.options(config))

	if token := c.native.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", config.Broker, token.Error())
	}

	log.Printf("MQTT Client: Connected to %s as %s", c.broker, c.clientID)
	return c, nil
}

func (c *Client) options(config ClientConfig) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.Broker)
	opts.SetClientID(c.clientID)
	opts.SetUsername(config.Username)
	opts.SetPassword(config.Password)
	opts.SetOnConnectHandler(c.onConnect)
	opts.SetConnectionLostHandler(c.onConnectionLost)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetConnectTimeout(10 * time.Second)
	return opts
}

func (c *Client) onConnect(mqtt.Client) {
	c.connected.Store(true)
	if n := c.connects.Add(1); n > 1 {
		log.Printf("MQTT: Reconnected to %s (connect #%d)", c.broker, n)
	}
	c.mu.Lock()
	c.lastChanged = time.Now().UTC()
	c.mu.Unlock()
}

func (c *Client) onConnectionLost(_ mqtt.Client, err error) {
	c.connected.Store(false)
	c.losses.Add(1)
	c.mu.Lock()
	c.lastErr = err
	c.lastChanged = time.Now().UTC()
	c.mu.Unlock()
	log.Printf("MQTT: Connection to %s lost: %v", c.broker, err)
}

// GetNativeClient returns the underlying paho MQTT client
// This is used by Publisher
func (c *Client) GetNativeClient() mqtt.Client {
	return c.native
}

// IsConnected reports the link state as last seen by the connection handlers
func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

// Status snapshots the connection counters
func (c *Client) Status() ConnectionStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := ConnectionStatus{
		Connected:   c.connected.Load(),
		Connects:    c.connects.Load(),
		Losses:      c.losses.Load(),
		LastChanged: c.lastChanged,
	}
	if c.lastErr != nil {
		status.LastError = c.lastErr.Error()
	}
	return status
}

// Close disconnects, letting in-flight publishes finish
func (c *Client) Close() {
	c.connected.Store(false)
	if c.native != nil {
		c.native.Disconnect(disconnectQuiesce)
	}
	log.Println("MQTT Client: Disconnected")
}

// uniqueClientID suffixes the configured id so several replicas can share a broker
func uniqueClientID(base string) string {
	return base + "-" + uuid.NewString()[:8]
}
