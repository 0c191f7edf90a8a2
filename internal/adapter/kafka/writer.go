// Package kafka publishes dispatch plans to a Kafka topic for downstream
// dispatch-planning consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/drought-relief-service/internal/config"
	"github.com/couchcryptid/drought-relief-service/internal/domain"
	"github.com/couchcryptid/drought-relief-service/internal/engine"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces dispatch route messages to the configured topic.
// It implements engine.DispatchPublisher.
type Writer struct {
	writer  *kafkago.Writer
	logger  *slog.Logger
	timeout time.Duration
}

// NewWriter creates a Kafka producer for the dispatch topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaDispatchTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger, timeout: cfg.DispatchPublishTimeout}
}

// PublishDispatch serializes and publishes every route of a scored batch in a
// single WriteMessages call, keyed by region so per-region consumers see
// routes in batch order.
func (w *Writer) PublishDispatch(ctx context.Context, batch *domain.Batch, routes []engine.DispatchRoute) error {
	if len(routes) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	msgs := make([]kafkago.Message, len(routes))
	for i := range routes {
		msg, err := serializeRoute(batch, routes[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeRoute marshals a dispatch route into a Kafka message carrying the
// batch identity in headers.
func serializeRoute(batch *domain.Batch, route engine.DispatchRoute) (kafkago.Message, error) {
	data, err := json.Marshal(route)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize dispatch route: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(route.RegionID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "batch_id", Value: []byte(batch.ID)},
			{Key: "scored_at", Value: []byte(batch.ScoredAt.Format(time.RFC3339))},
		},
	}, nil
}
