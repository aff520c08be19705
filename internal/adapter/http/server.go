package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/coastal-early-warning/internal/adapter/openweather"
	"github.com/couchcryptid/coastal-early-warning/internal/domain"
	"github.com/couchcryptid/coastal-early-warning/internal/pipeline"
)

// Assessor runs risk assessments. Implemented by pipeline.Pipeline.
type Assessor interface {
	Assess(ctx context.Context, features []float64) (domain.RiskAssessment, error)
	AssessLive(ctx context.Context, location string) (domain.RiskAssessment, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the assessment API plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates the API server. Routes:
//
//	GET  /healthz
//	GET  /readyz
//	GET  /metrics
//	GET  /v1/locations
//	POST /v1/assess                  {"features": [...]}
//	GET  /v1/assess/live/{location}
func NewServer(addr string, assessor Assessor, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      withCORS(withRequestLog(mux, logger)),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/locations", s.handleLocations)
	mux.HandleFunc("POST /v1/assess", s.handleAssess(assessor))
	mux.HandleFunc("GET /v1/assess/live/{location}", s.handleAssessLive(assessor))

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

func (s *Server) handleLocations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"locations": openweather.Locations()})
}

type assessRequest struct {
	Features []float64 `json:"features"`
}

func (s *Server) handleAssess(assessor Assessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "request body must be JSON with a \"features\" array")
			return
		}

		assessment, err := assessor.Assess(r.Context(), req.Features)
		if err != nil {
			s.writeAssessError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, assessment)
	}
}

func (s *Server) handleAssessLive(assessor Assessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assessment, err := assessor.AssessLive(r.Context(), r.PathValue("location"))
		if err != nil {
			s.writeAssessError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, assessment)
	}
}

// writeAssessError maps the assessment error taxonomy to HTTP statuses:
// client-input conditions to 4xx, transient collaborator failures to 503,
// model failures to 502, contract violations to 500.
func (s *Server) writeAssessError(w http.ResponseWriter, err error) {
	var (
		insufficient *domain.InsufficientDataError
		shape        *domain.ShapeMismatchError
		prediction   *domain.PredictionError
		upstream     *domain.UpstreamDataError
	)

	switch {
	case errors.As(err, &insufficient):
		writeError(w, http.StatusUnprocessableEntity, "insufficient_data", err.Error())
	case errors.Is(err, openweather.ErrUnknownLocation):
		writeError(w, http.StatusNotFound, "unknown_location", err.Error())
	case errors.Is(err, domain.ErrModelsUnavailable):
		writeError(w, http.StatusServiceUnavailable, "models_unavailable", err.Error())
	case errors.Is(err, pipeline.ErrLiveDisabled):
		writeError(w, http.StatusServiceUnavailable, "live_disabled", err.Error())
	case errors.As(err, &upstream):
		writeError(w, http.StatusServiceUnavailable, "upstream_unavailable", "weather provider unavailable, try again")
	case errors.As(err, &prediction):
		writeError(w, http.StatusBadGateway, "prediction_failed", err.Error())
	case errors.As(err, &shape):
		s.logger.Error("shape contract violation", "error", err)
		writeError(w, http.StatusInternalServerError, "shape_mismatch", err.Error())
	default:
		s.logger.Error("assessment failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, map[string]string{"kind": kind, "error": message})
}
