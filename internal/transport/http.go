package transport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ganot/squadboard/internal/domain/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ReportService is the read surface served over HTTP.
type ReportService interface {
	GetEngineerMetrics(ctx context.Context) ([]metrics.EngineerMetrics, error)
	GetProjectSummary(ctx context.Context) (metrics.ProjectReport, error)
	GetSquadNames(ctx context.Context) ([]string, error)
	GetStatusBreakdown(ctx context.Context) ([]metrics.StatusCount, error)
	GetSquadDistribution(ctx context.Context) ([]metrics.SquadCount, error)
	GetTeamOverview(ctx context.Context) (metrics.TeamOverview, error)
}

// AnomalyCountHeader carries the number of projects left out of /api/projects.
const AnomalyCountHeader = "X-Data-Anomalies"

// Config configures the HTTP router.
type Config struct {
	Service        ReportService
	Logger         *slog.Logger
	RequestTimeout time.Duration
	// MCP is mounted at /mcp when set.
	MCP http.Handler
}

// Server wires HTTP handlers.
type Server struct {
	svc    ReportService
	logger *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)

	srv := &Server{svc: cfg.Service, logger: logger}

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
		}
		r.Get("/engineers", srv.handleEngineers)
		r.Get("/engineers/overview", srv.handleTeamOverview)
		r.Get("/engineers/squad-distribution", srv.handleSquadDistribution)
		r.Get("/projects", srv.handleProjects)
		r.Get("/projects/anomalies", srv.handleAnomalies)
		r.Get("/projects/status-breakdown", srv.handleStatusBreakdown)
		r.Get("/squads", srv.handleSquads)
	})

	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleEngineers(w http.ResponseWriter, r *http.Request) {
	rows, err := s.svc.GetEngineerMetrics(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleTeamOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.svc.GetTeamOverview(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleSquadDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := s.svc.GetSquadDistribution(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dist)
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.GetProjectSummary(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set(AnomalyCountHeader, strconv.Itoa(len(report.Anomalies)))
	writeJSON(w, http.StatusOK, report.Projects)
}

func (s *Server) handleAnomalies(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.GetProjectSummary(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report.Anomalies)
}

func (s *Server) handleStatusBreakdown(w http.ResponseWriter, r *http.Request) {
	counts, err := s.svc.GetStatusBreakdown(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

type squadName struct {
	Name string `json:"name"`
}

func (s *Server) handleSquads(w http.ResponseWriter, r *http.Request) {
	names, err := s.svc.GetSquadNames(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]squadName, len(names))
	for i, name := range names {
		out[i] = squadName{Name: name}
	}
	writeJSON(w, http.StatusOK, out)
}

// fail logs the cause and answers with an opaque 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID, _ := RequestIDFromContext(r.Context())
	s.logger.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", requestID,
		"error", err,
	)
	writeInternalError(w)
}
