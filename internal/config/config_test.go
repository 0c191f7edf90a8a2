package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Empty(t, cfg.KafkaDispatchTopic)
	assert.False(t, cfg.DispatchPublishEnabled)
	assert.Equal(t, 5*time.Second, cfg.DispatchPublishTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_DISPATCH_TOPIC", "tanker-dispatch")
	t.Setenv("DISPATCH_PUBLISH_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "tanker-dispatch", cfg.KafkaDispatchTopic)
	assert.True(t, cfg.DispatchPublishEnabled)
	assert.Equal(t, 2*time.Second, cfg.DispatchPublishTimeout)
}

func TestLoad_TopicEnablesPublishing(t *testing.T) {
	t.Setenv("KAFKA_DISPATCH_TOPIC", "tanker-dispatch")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.DispatchPublishEnabled)
}

func TestLoad_ExplicitDisableOverridesTopic(t *testing.T) {
	t.Setenv("KAFKA_DISPATCH_TOPIC", "tanker-dispatch")
	t.Setenv("DISPATCH_PUBLISH_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.DispatchPublishEnabled)
}

func TestLoad_EnabledWithoutTopic(t *testing.T) {
	t.Setenv("DISPATCH_PUBLISH_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_DISPATCH_TOPIC")
}

func TestLoad_InvalidDurations(t *testing.T) {
	t.Run("shutdown timeout", func(t *testing.T) {
		t.Setenv("SHUTDOWN_TIMEOUT", "soon")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
	})

	t.Run("publish timeout must be positive", func(t *testing.T) {
		t.Setenv("DISPATCH_PUBLISH_TIMEOUT", "-1s")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DISPATCH_PUBLISH_TIMEOUT")
	})
}
