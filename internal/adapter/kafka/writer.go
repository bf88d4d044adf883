// Package kafka publishes normalized observations to a topic after each
// successful reload, for downstream consumers (alerting, archival). The
// exporter is feature-flagged and entirely optional; the pipeline runs the
// same without it.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/ice-report-service/internal/config"
	"github.com/couchcryptid/ice-report-service/internal/domain"
)

// Writer produces observation messages to the configured topic.
// It implements pipeline.Exporter.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a producer for the configured export topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishObservations serializes and publishes a full observation set in one
// WriteMessages call.
func (w *Writer) PublishObservations(ctx context.Context, observations []domain.Observation) error {
	if len(observations) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(observations))
	for i := range observations {
		msg, err := serializeToMessage(observations[i])
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

// serializeToMessage marshals an observation into a Kafka message. The key
// is lake|dateKey so repeated loads of the same sheet compact cleanly on a
// keyed topic.
func serializeToMessage(o domain.Observation) (kafkago.Message, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize observation: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(o.Lake + "|" + o.DateKey),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "lake", Value: []byte(o.Lake)},
			{Key: "date_key", Value: []byte(o.DateKey)},
		},
	}, nil
}
