package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bobmcallan/fmp-mcp/internal/common"
	"github.com/bobmcallan/fmp-mcp/internal/config"
)

// Server manages the HTTP server and routes for the streamable-http transport.
type Server struct {
	cfg    *config.Config
	router *http.ServeMux
	server *http.Server
	logger *common.Logger
}

// New creates a new HTTP server that mounts the MCP handler at the
// configured path alongside the health endpoint.
func New(cfg *config.Config, mcpHandler http.Handler, logger *common.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
	}

	s.router = s.setupRoutes(mcpHandler)

	// SSE-framed responses hold the connection open indefinitely, so the
	// write timeout only applies in JSON response mode.
	writeTimeout := 300 * time.Second
	if !cfg.Server.JSONResponse {
		writeTimeout = 0
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.withMiddleware(s.router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().
		Str("address", s.server.Addr).
		Str("url", fmt.Sprintf("http://%s", s.server.Addr)).
		Msg("HTTP server starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
