// Package server assembles the HTTP API around the analysis pipeline.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/config"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/handlers"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/middleware"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/pipeline"
)

// Server is the statement analyzer API server.
type Server struct {
	cfg *config.Config
	mux *http.ServeMux
}

// New creates a server around a pipeline.
func New(cfg *config.Config, p *pipeline.Pipeline) *Server {
	s := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
	}
	s.setupRoutes(p)
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(p *pipeline.Pipeline) {
	s.mux.HandleFunc("/health", handlers.HealthCheck)
	s.mux.Handle("/metrics", promhttp.Handler())

	analyzeHandler := handlers.NewAnalyzeHandler(p)
	s.mux.HandleFunc("/api/analyze", analyzeHandler.Analyze)
}

// Handler returns the HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	handler := middleware.MaxBytes(s.cfg.MaxUploadBytes)(s.mux)
	handler = middleware.Logging(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.CORS(handler)
	return handler
}

// ListenAndServe runs the server on the configured address.
func (s *Server) ListenAndServe() error {
	return http.ListenAndServe(s.cfg.ListenAddr, s.Handler())
}
