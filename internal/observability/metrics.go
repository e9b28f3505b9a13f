package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus gauges, counters, and histograms for stationd.
type Metrics struct {
	StationsLoaded        prometheus.Gauge
	InventoryLoadDuration prometheus.Histogram

	// Kafka feature publishing metrics.
	FeaturesPublished prometheus.Counter
	PublishErrors     prometheus.Counter
	PublishBatchSize  prometheus.Histogram

	// Nearest-station query metrics.
	NearestQueries prometheus.Counter
	NearestCache   *prometheus.CounterVec // labels: result={hit,miss}

	HTTPRequests *prometheus.CounterVec // labels: route, status
}

// NewMetrics creates and registers all stationd metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		StationsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "station_etl",
			Name:      "stations_loaded",
			Help:      "Number of distinct stations in the loaded inventory.",
		}),
		InventoryLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "station_etl",
			Name:      "inventory_load_duration_seconds",
			Help:      "Time to read and parse the station inventory.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		FeaturesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "station_etl",
			Name:      "features_published_total",
			Help:      "Total station features written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "station_etl",
			Name:      "publish_errors_total",
			Help:      "Total failed feature batch publishes.",
		}),
		PublishBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "station_etl",
			Name:      "publish_batch_size",
			Help:      "Number of features per published Kafka batch.",
			Buckets:   []float64{1, 10, 50, 100, 250, 500, 1000},
		}),
		NearestQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "station_etl",
			Name:      "nearest_queries_total",
			Help:      "Total nearest-station queries served.",
		}),
		NearestCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "station_etl",
			Name:      "nearest_cache_total",
			Help:      "Nearest-query cache lookups by result.",
		}, []string{"result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "station_etl",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
	}

	prometheus.MustRegister(
		m.StationsLoaded,
		m.InventoryLoadDuration,
		m.FeaturesPublished,
		m.PublishErrors,
		m.PublishBatchSize,
		m.NearestQueries,
		m.NearestCache,
		m.HTTPRequests,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		StationsLoaded:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "station_etl", Name: "stations_loaded"}),
		InventoryLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "station_etl", Name: "inventory_load_duration_seconds"}),
		FeaturesPublished:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "station_etl", Name: "features_published_total"}),
		PublishErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "station_etl", Name: "publish_errors_total"}),
		PublishBatchSize:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "station_etl", Name: "publish_batch_size"}),
		NearestQueries:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "station_etl", Name: "nearest_queries_total"}),
		NearestCache:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "station_etl", Name: "nearest_cache_total"}, []string{"result"}),
		HTTPRequests:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "station_etl", Name: "http_requests_total"}, []string{"route", "status"}),
	}
}
