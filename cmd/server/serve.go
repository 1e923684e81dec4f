package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"portfolio-backend/internal/api"
	"portfolio-backend/internal/catalog"
	"portfolio-backend/internal/mqtt"
	"portfolio-backend/internal/services"
	"portfolio-backend/internal/stream"
	"portfolio-backend/pkg/config"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, v)
		},
	}
}

func runServe(cmd *cobra.Command, v *viper.Viper) error {
	log.Printf("Starting Portfolio Backend %s...", version)

	// Load configuration
	cfg := config.Load(v)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := streamOptions(cfg)
	serverConfig := api.ServerConfig{
		Addr:          cfg.HTTPAddr,
		StreamOptions: opts,
	}

	// === Optional MQTT mirror ===
	var wg sync.WaitGroup
	if cfg.MQTTEnabled {
		mirror, client, err := startMirror(ctx, cfg, opts, &wg)
		if err != nil {
			return err
		}
		defer client.Close()
		serverConfig.Mirror = mirror
		serverConfig.Broker = client
	}

	server := api.NewServer(serverConfig, c)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.ListenAndServe()
	}()

	log.Println("=== Portfolio Backend is running ===")
	log.Printf("Feeds: %v", stream.Feeds())
	if cfg.MQTTEnabled {
		log.Printf("MQTT mirror: %v -> %s", cfg.MQTTMirrorFeeds, cfg.MQTTTopicStream)
	}
	log.Println("Press Ctrl+C to exit...")

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
		log.Println("Shutdown signal received, stopping services...")
	}

	// === Graceful shutdown ===
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP Server: forced shutdown: %v", err)
	}

	wg.Wait()
	log.Println("Shutdown complete. Goodbye!")
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	log.Printf("Loading catalog from %s", path)
	return catalog.Load(path)
}

// startMirror connects to the broker and starts the mirror drivers and the publisher.
// Both goroutines are tracked by wg and stop with ctx.
func startMirror(ctx context.Context, cfg *config.Config, opts stream.Options, wg *sync.WaitGroup) (*services.MirrorService, *mqtt.Client, error) {
	log.Println("Connecting to MQTT broker...")
	client, err := mqtt.NewClient(mqtt.ClientConfig{
		Broker:   cfg.MQTTBroker,
		ClientID: cfg.MQTTClientID,
		Username: cfg.MQTTUsername,
		Password: cfg.MQTTPassword,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize MQTT client: %w", err)
	}

	mirrorConfig := services.DefaultMirrorServiceConfig()
	mirrorConfig.Feeds = cfg.MQTTMirrorFeeds
	mirrorConfig.Options = opts

	mirror, err := services.NewMirrorService(mirrorConfig)
	if err != nil {
		client.Close()
		return nil, nil, err
	}

	// The publisher drains the channel the mirror writes to
	publisher := mqtt.NewPublisher(
		client.GetNativeClient(),
		mqtt.PublisherConfig{StreamTopic: cfg.MQTTTopicStream},
		mirror.FrameChan,
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		publisher.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		mirror.Start(ctx)
	}()

	return mirror, client, nil
}

// streamOptions applies the configured cadence on top of the production defaults
func streamOptions(cfg *config.Config) stream.Options {
	opts := stream.DefaultOptions()
	opts.TrainingEpochs = cfg.TrainingEpochs
	opts.TrainingRestartPause = cfg.TrainingRestartPause
	opts.PipelineRestartPause = cfg.PipelineRestartPause
	return opts
}
