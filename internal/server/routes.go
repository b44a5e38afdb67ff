package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(mcpHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// MCP endpoint (JSON-RPC over HTTP). Both the bare and trailing-slash
	// forms are mounted so POSTs are never bounced through a 301 redirect.
	path := strings.TrimSuffix(s.cfg.Server.Path, "/")
	if path == "" {
		mux.Handle("/", mcpHandler)
	} else {
		mux.Handle(path, mcpHandler)
		mux.Handle(path+"/", mcpHandler)
		mux.HandleFunc("/", s.handleNotFound)
	}

	mux.HandleFunc("/health", s.handleHealth)

	return mux
}

// handleHealth reports liveness without touching the FMP upstream.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"error":"Method Not Allowed"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"fmp-mcp-server"}`))
}

// handleNotFound returns a JSON 404 for unmatched routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
