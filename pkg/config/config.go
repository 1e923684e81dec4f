package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// HTTP Configuration
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// Static tables; empty means the embedded catalog
	CatalogPath string

	// Stream Configuration
	TrainingEpochs       int
	TrainingRestartPause time.Duration
	PipelineRestartPause time.Duration

	// MQTT mirror Configuration
	MQTTEnabled     bool
	MQTTBroker      string
	MQTTClientID    string
	MQTTUsername    string
	MQTTPassword    string
	MQTTTopicStream string   // e.g., "portfolio/stream/{feed}"
	MQTTMirrorFeeds []string // feeds published while the server runs
}

// Keys shared by environment variables (upper-cased) and command flags
const (
	KeyHTTPAddr             = "http_addr"
	KeyShutdownTimeout      = "shutdown_timeout"
	KeyCatalogPath          = "catalog_path"
	KeyTrainingEpochs       = "training_epochs"
	KeyTrainingRestartPause = "training_restart_pause"
	KeyPipelineRestartPause = "pipeline_restart_pause"
	KeyMQTTEnabled          = "mqtt_enabled"
	KeyMQTTBroker           = "mqtt_broker"
	KeyMQTTClientID         = "mqtt_client_id"
	KeyMQTTUsername         = "mqtt_username"
	KeyMQTTPassword         = "mqtt_password"
	KeyMQTTTopicStream      = "mqtt_topic_stream"
	KeyMQTTMirrorFeeds      = "mqtt_mirror_feeds"
)

// Load resolves the configuration from .env, the environment and any flags bound on v.
// A nil v uses a fresh viper instance.
func Load(v *viper.Viper) *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	if v == nil {
		v = viper.New()
	}
	setDefaults(v)
	v.AutomaticEnv()

	return &Config{
		// HTTP Configuration
		HTTPAddr:        v.GetString(KeyHTTPAddr),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
		CatalogPath:     v.GetString(KeyCatalogPath),

		// Stream Configuration
		TrainingEpochs:       v.GetInt(KeyTrainingEpochs),
		TrainingRestartPause: v.GetDuration(KeyTrainingRestartPause),
		PipelineRestartPause: v.GetDuration(KeyPipelineRestartPause),

		// MQTT mirror Configuration
		MQTTEnabled:     v.GetBool(KeyMQTTEnabled),
		MQTTBroker:      v.GetString(KeyMQTTBroker),
		MQTTClientID:    v.GetString(KeyMQTTClientID),
		MQTTUsername:    v.GetString(KeyMQTTUsername),
		MQTTPassword:    v.GetString(KeyMQTTPassword),
		MQTTTopicStream: v.GetString(KeyMQTTTopicStream),
		MQTTMirrorFeeds: splitList(v.GetString(KeyMQTTMirrorFeeds)),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyHTTPAddr, ":8000")
	v.SetDefault(KeyShutdownTimeout, 5*time.Second)
	v.SetDefault(KeyCatalogPath, "")

	v.SetDefault(KeyTrainingEpochs, 50)
	v.SetDefault(KeyTrainingRestartPause, 3*time.Second)
	v.SetDefault(KeyPipelineRestartPause, 5*time.Second)

	v.SetDefault(KeyMQTTEnabled, false)
	v.SetDefault(KeyMQTTBroker, "tcp://localhost:1883")
	v.SetDefault(KeyMQTTClientID, "portfolio-backend")
	v.SetDefault(KeyMQTTUsername, "")
	v.SetDefault(KeyMQTTPassword, "")
	v.SetDefault(KeyMQTTTopicStream, "portfolio/stream/{feed}")
	v.SetDefault(KeyMQTTMirrorFeeds, "metrics")
}

// Validate reports settings the server cannot start with
func (c *Config) Validate() error {
	var errs []error
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http address is required"))
	}
	if c.TrainingEpochs <= 0 {
		errs = append(errs, fmt.Errorf("training epochs must be positive, got %d", c.TrainingEpochs))
	}
	if c.TrainingRestartPause < 0 || c.PipelineRestartPause < 0 {
		errs = append(errs, errors.New("restart pauses must not be negative"))
	}
	if c.MQTTEnabled {
		if c.MQTTBroker == "" {
			errs = append(errs, errors.New("mqtt broker is required when the mirror is enabled"))
		}
		if !strings.Contains(c.MQTTTopicStream, "{feed}") {
			errs = append(errs, fmt.Errorf("mqtt stream topic %q must contain {feed}", c.MQTTTopicStream))
		}
	}
	return errors.Join(errs...)
}

// splitList parses "a, b,,c" into [a b c]
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
