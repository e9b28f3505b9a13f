// Package pipeline publishes a loaded feature collection to a downstream
// sink in batches. Unlike a long-running consumer loop, the inventory is a
// bounded dataset, so a publish run is one pass over the collection.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/ghcn-station-etl/internal/domain"
	"github.com/couchcryptid/ghcn-station-etl/internal/observability"
)

// BatchLoader writes multiple station features to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, features []domain.Feature) error
}

// Publisher pushes station features to a BatchLoader in fixed-size chunks.
type Publisher struct {
	loader    BatchLoader
	logger    *slog.Logger
	metrics   *observability.Metrics
	batchSize int
}

// NewPublisher creates a Publisher with the given sink and observability.
func NewPublisher(loader BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Publisher {
	return &Publisher{
		loader:    loader,
		logger:    logger,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

// Publish writes every feature in the collection to the sink. It stops at
// the first failed batch so a retry can resume from a known offset.
func (p *Publisher) Publish(ctx context.Context, fc domain.FeatureCollection) error {
	total := len(fc.Features)
	p.logger.Info("publishing station features", "count", total, "batch_size", p.batchSize)
	start := time.Now()

	for offset := 0; offset < total; offset += p.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := offset + p.batchSize
		if end > total {
			end = total
		}
		batch := fc.Features[offset:end]

		if err := p.loader.LoadBatch(ctx, batch); err != nil {
			p.metrics.PublishErrors.Inc()
			return fmt.Errorf("load batch at offset %d: %w", offset, err)
		}

		p.metrics.FeaturesPublished.Add(float64(len(batch)))
		p.metrics.PublishBatchSize.Observe(float64(len(batch)))
	}

	p.logger.Info("publish complete", "count", total, "duration", time.Since(start))
	return nil
}
