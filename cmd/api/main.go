package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/drought-relief-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/drought-relief-service/internal/adapter/kafka"
	"github.com/couchcryptid/drought-relief-service/internal/config"
	"github.com/couchcryptid/drought-relief-service/internal/engine"
	"github.com/couchcryptid/drought-relief-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Dispatch fan-out is feature-flagged via KAFKA_DISPATCH_TOPIC /
	// DISPATCH_PUBLISH_ENABLED.
	var publisher engine.DispatchPublisher
	var writer *kafkaadapter.Writer
	if cfg.DispatchPublishEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("dispatch publishing enabled",
			"topic", cfg.KafkaDispatchTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("dispatch publishing disabled")
	}

	eng := engine.New(publisher, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, eng, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
