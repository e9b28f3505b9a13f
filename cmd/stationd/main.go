package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/ghcn-station-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/ghcn-station-etl/internal/adapter/kafka"
	"github.com/couchcryptid/ghcn-station-etl/internal/config"
	"github.com/couchcryptid/ghcn-station-etl/internal/datafile"
	"github.com/couchcryptid/ghcn-station-etl/internal/domain"
	"github.com/couchcryptid/ghcn-station-etl/internal/index"
	"github.com/couchcryptid/ghcn-station-etl/internal/observability"
	"github.com/couchcryptid/ghcn-station-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	path, err := datafile.Resolve(cfg.InventoryPath, cfg.DataDir, ".inv")
	if err != nil {
		logger.Error("failed to locate inventory", "error", err)
		os.Exit(1)
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Error("failed to open inventory", "path", path, "error", err)
		os.Exit(1)
	}

	start := time.Now()
	inv, err := domain.ParseInventory(f)
	f.Close()
	if err != nil {
		logger.Error("failed to parse inventory", "path", path, "error", err)
		os.Exit(1)
	}
	metrics.StationsLoaded.Set(float64(inv.Len()))
	metrics.InventoryLoadDuration.Observe(time.Since(start).Seconds())
	logger.Info("inventory loaded", "path", path, "stations", inv.Len(), "duration", time.Since(start))

	ix := index.New(inv, cfg.NearestCacheSize, metrics, clock)
	srv := httpadapter.NewServer(cfg.HTTPAddr, ix, ix, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Optionally publish the loaded features once (feature-flagged via KAFKA_ENABLED).
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger, clock)
		publisher := pipeline.NewPublisher(writer, logger, metrics, cfg.PublishBatchSize)
		go func() {
			if err := publisher.Publish(ctx, ix.Collection()); err != nil {
				logger.Error("feature publish error", "error", err)
			}
		}()
	} else {
		logger.Info("kafka publishing disabled")
	}

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
