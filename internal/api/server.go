// Package api exposes the portfolio over HTTP: static JSON tables, one-shot
// synthetic payloads, the terminal simulator and the live feeds.
package api

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"portfolio-backend/internal/catalog"
	"portfolio-backend/internal/mqtt"
	"portfolio-backend/internal/stream"
	"portfolio-backend/internal/terminal"
)

// MirrorStatus reports the server-side mirrored feeds, if any
type MirrorStatus interface {
	States() map[string]stream.State
}

// BrokerStatus reports the MQTT connection behind the mirror
type BrokerStatus interface {
	IsConnected() bool
	Status() mqtt.ConnectionStatus
}

// ServerConfig holds configuration for the HTTP server
type ServerConfig struct {
	Addr          string
	StreamOptions stream.Options

	// Optional, set only when feeds are mirrored to MQTT
	Mirror MirrorStatus
	Broker BrokerStatus
}

// Server provides the HTTP endpoints of the portfolio
type Server struct {
	catalog  *catalog.Catalog
	terminal *terminal.Simulator
	opts     stream.Options
	mirror   MirrorStatus
	broker   BrokerStatus

	// Cancels the base context of every request so shutdown ends open streams
	cancel context.CancelFunc

	server *http.Server
}

// NewServer creates a new server instance over an already loaded catalog
func NewServer(config ServerConfig, c *catalog.Catalog) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		catalog:  c,
		terminal: terminal.New(c, config.StreamOptions.TrainingEpochs),
		opts:     config.StreamOptions,
		mirror:   config.Mirror,
		broker:   config.Broker,
		cancel:   cancel,
	}

	s.server = &http.Server{
		Addr:              config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	return s
}

// Handler returns the full middleware-wrapped router
func (s *Server) Handler() http.Handler {
	return withLogging(withCORS(NewRouter(s)))
}

// ListenAndServe serves until Shutdown is called
func (s *Server) ListenAndServe() error {
	log.Printf("HTTP Server: Listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops every open stream, then waits for handlers to return
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("HTTP Server: Shutting down...")
	s.cancel()
	return s.server.Shutdown(ctx)
}
