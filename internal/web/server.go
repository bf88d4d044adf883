// Package web exposes the report API: filtered table rows and map markers
// driven entirely by URL query parameters, plus health, readiness, and
// metrics endpoints.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/ice-report-service/internal/domain"
	"github.com/couchcryptid/ice-report-service/internal/i18n"
	"github.com/couchcryptid/ice-report-service/internal/query"
)

// Pipeline is the subset of the pipeline root the server needs.
type Pipeline interface {
	Snapshot() []domain.Observation
	BaseState() query.State
	RememberState(query.State)
	Reload(ctx context.Context) error
	Loading() bool
	CheckReadiness(ctx context.Context) error
}

// Server exposes the report API over HTTP.
type Server struct {
	httpServer *http.Server
	pipeline   Pipeline
	bundle     *i18n.Bundle
	logger     *slog.Logger
}

// NewServer creates the HTTP server with all routes mounted.
func NewServer(addr string, p Pipeline, bundle *i18n.Bundle, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		pipeline: p,
		bundle:   bundle,
		logger:   logger,
	}

	mux.HandleFunc("GET /api/reports", s.handleReports)
	mux.HandleFunc("GET /api/markers", s.handleMarkers)
	mux.HandleFunc("GET /api/lakes", s.handleLakes)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
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

// stateFor decodes the request's query parameters over the sticky base state
// and adopts the result, so the next parameter-less request sees the same
// display settings. The canonical re-encoding goes back in every response;
// clients keep their address bar equal to it, which is what makes back/
// forward navigation indistinguishable from a fresh load.
func (s *Server) stateFor(r *http.Request) query.State {
	state := query.Decode(r.URL.Query(), s.pipeline.BaseState())
	s.pipeline.RememberState(state)
	return state
}

type reportsResponse struct {
	Query   string   `json:"query"`
	Loading bool     `json:"loading"`
	Count   int      `json:"count"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	state := s.stateFor(r)
	visible := query.Apply(s.pipeline.Snapshot(), state)

	writeJSON(w, http.StatusOK, reportsResponse{
		Query:   query.Encode(state),
		Loading: s.pipeline.Loading(),
		Count:   len(visible),
		Columns: columnLabels(state, s.bundle),
		Rows:    buildRows(visible, state, s.bundle),
	})
}

type markersResponse struct {
	Query   string   `json:"query"`
	Loading bool     `json:"loading"`
	Markers []Marker `json:"markers"`
}

func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	state := s.stateFor(r)
	visible := query.Apply(s.pipeline.Snapshot(), state)
	visible = query.ApplyWindow(visible, state)

	writeJSON(w, http.StatusOK, markersResponse{
		Query:   query.Encode(state),
		Loading: s.pipeline.Loading(),
		Markers: buildMarkers(visible, state, s.bundle),
	})
}

func (s *Server) handleLakes(w http.ResponseWriter, r *http.Request) {
	state := s.stateFor(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"lakes": lakeNames(s.pipeline.Snapshot(), state),
	})
}

// handleRefresh triggers a reload. A reload already in flight makes this a
// no-op; a failed reload reports the localized status while the stale data
// stays served.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	state := s.stateFor(r)

	if err := s.pipeline.Reload(r.Context()); err != nil {
		key := "status_transport"
		if errors.Is(err, domain.ErrDecode) {
			key = "status_decode"
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"status": s.bundle.Lookup(state.Language, key),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": s.bundle.Lookup(state.Language, "status_ready"),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.pipeline.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
