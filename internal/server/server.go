// Package server hosts the rendering pipeline behind an HTTP listener with
// the shared middleware chain.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"centrum/internal/logging"
	"centrum/internal/version"
)

// Server represents the HTTP server
type Server struct {
	router *http.ServeMux
	server *http.Server
	addr   string
	logger *logging.Logger
}

// NewServer creates the HTTP server. pages is the catch-all page handler
// (the render dispatcher); publicDir backs the static asset prefixes, which
// bypass the rendering pipeline entirely.
func NewServer(addr string, pages http.Handler, publicDir string, logger *logging.Logger) *Server {
	s := &Server{
		addr:   addr,
		logger: logger,
		router: http.NewServeMux(),
	}

	s.registerRoutes(pages, publicDir)

	handler := s.applyMiddleware(s.router)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// registerRoutes registers asset, operational, and page routes
func (s *Server) registerRoutes(pages http.Handler, publicDir string) {
	// Asset prefixes are served straight from disk.
	assets := http.FileServer(http.Dir(publicDir))
	s.router.Handle("/static/", assets)
	s.router.Handle("/images/", assets)

	s.router.HandleFunc("/healthz", s.handleHealthz)
	s.router.Handle("/metrics", promhttp.Handler())

	// Everything else goes through the rendering pipeline.
	s.router.Handle("/", pages)
}

// handleHealthz responds to liveness checks
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   version.Version,
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": s.addr,
	})

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server", nil)

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server shut down successfully", nil)
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler with middleware in the correct order
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	// Apply middleware in reverse order (last one wraps first)
	handler = MetricsMiddleware()(handler)
	handler = gzhttp.GzipHandler(handler)
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware()(handler)
	return handler
}
