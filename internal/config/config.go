package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Dispatch plan publishing. Disabled unless a topic is configured
	// (or forced via DISPATCH_PUBLISH_ENABLED).
	KafkaBrokers           []string
	KafkaDispatchTopic     string
	DispatchPublishEnabled bool
	DispatchPublishTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	publishTimeout, err := parseDurationEnv("DISPATCH_PUBLISH_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	dispatchTopic := os.Getenv("KAFKA_DISPATCH_TOPIC")
	publishEnabled := dispatchTopic != ""
	if v := os.Getenv("DISPATCH_PUBLISH_ENABLED"); v != "" {
		publishEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers:           parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaDispatchTopic:     dispatchTopic,
		DispatchPublishEnabled: publishEnabled,
		DispatchPublishTimeout: publishTimeout,
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}
	if cfg.DispatchPublishEnabled {
		if cfg.KafkaDispatchTopic == "" {
			return nil, errors.New("DISPATCH_PUBLISH_ENABLED is true but KAFKA_DISPATCH_TOPIC is not set")
		}
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when dispatch publishing is enabled")
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func parseBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
