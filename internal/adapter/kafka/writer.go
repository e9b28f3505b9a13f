package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/ghcn-station-etl/internal/config"
	"github.com/couchcryptid/ghcn-station-etl/internal/domain"
)

// Writer produces station features to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
	clock  clockwork.Clock
}

// NewWriter creates a Kafka producer for the configured feature topic.
func NewWriter(cfg *config.Config, logger *slog.Logger, clock clockwork.Clock) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger, clock: clock}
}

// LoadBatch serializes and publishes multiple station features to the Kafka
// topic in a single WriteMessages call for efficiency.
func (w *Writer) LoadBatch(ctx context.Context, features []domain.Feature) error {
	if len(features) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(features))
	for i := range features {
		msg, err := w.serializeToMessage(features[i])
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

// serializeToMessage marshals a station feature into a Kafka message keyed
// on the station id, with the three-digit country prefix as a header so
// consumers can filter by country without decoding the value.
func (w *Writer) serializeToMessage(feature domain.Feature) (kafkago.Message, error) {
	data, err := json.Marshal(feature)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize station feature: %w", err)
	}
	country := feature.ID
	if len(country) > 3 {
		country = country[:3]
	}
	return kafkago.Message{
		Key:   []byte(feature.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "station_country", Value: []byte(country)},
			{Key: "processed_at", Value: []byte(w.clock.Now().UTC().Format(time.RFC3339))},
		},
	}, nil
}
