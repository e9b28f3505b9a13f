package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/ghcn-station-etl/internal/domain"
	"github.com/couchcryptid/ghcn-station-etl/internal/observability"
)

const geoJSONContentType = "application/geo+json"

// StationSource serves station features to the HTTP layer.
type StationSource interface {
	Collection() domain.FeatureCollection
	Feature(id string) (domain.Feature, bool)
	Nearest(lat, lon float64, n int) []domain.Feature
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the station API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	stations   StationSource
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates the station HTTP server.
func NewServer(addr string, stations StationSource, ready ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		stations: stations,
		logger:   logger,
		metrics:  metrics,
	}

	mux.HandleFunc("GET /stations", s.instrument("/stations", s.handleStations))
	mux.HandleFunc("GET /stations/nearest", s.instrument("/stations/nearest", s.handleNearest))
	mux.HandleFunc("GET /stations/{id}", s.instrument("/stations/{id}", s.handleStation))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleStations(w http.ResponseWriter, _ *http.Request) {
	writeGeoJSON(w, http.StatusOK, s.stations.Collection())
}

func (s *Server) handleStation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	feature, ok := s.stations.Feature(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown station id"})
		return
	}
	writeGeoJSON(w, http.StatusOK, feature)
}

func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	at := r.URL.Query().Get("at")
	if at == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing at parameter, expected ±LAT±LON"})
		return
	}
	lat, lon, err := domain.ParseTarget(at)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	n := 10
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "n must be a positive integer"})
			return
		}
		n = parsed
	}

	features := s.stations.Nearest(lat, lon, n)
	writeGeoJSON(w, http.StatusOK, domain.NewFeatureCollection(features))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// instrument counts requests per route and response status.
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(sw, r)
		s.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func writeGeoJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", geoJSONContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
