package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all stationd settings, populated from environment variables.
type Config struct {
	InventoryPath string
	DataDir       string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	NearestCacheSize int

	// Kafka feature publishing configuration.
	KafkaBrokers     []string
	KafkaTopic       string
	KafkaEnabled     bool
	PublishBatchSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := parsePublishBatchSize()
	if err != nil {
		return nil, err
	}

	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		InventoryPath: os.Getenv("INVENTORY_PATH"),
		DataDir:       sharedcfg.EnvOrDefault("DATA_DIR", "input"),

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		NearestCacheSize: parseNearestCacheSize(),

		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:       sharedcfg.EnvOrDefault("KAFKA_TOPIC", "station-features"),
		KafkaEnabled:     kafkaEnabled,
		PublishBatchSize: batchSize,
	}

	if cfg.InventoryPath == "" && cfg.DataDir == "" {
		return nil, errors.New("one of INVENTORY_PATH or DATA_DIR is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

func parsePublishBatchSize() (int, error) {
	s := os.Getenv("PUBLISH_BATCH_SIZE")
	if s == "" {
		return 500, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid PUBLISH_BATCH_SIZE")
	}
	return n, nil
}

func parseNearestCacheSize() int {
	if s := os.Getenv("NEAREST_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
