package mcp

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/fmp-mcp/internal/common"
	"github.com/bobmcallan/fmp-mcp/internal/config"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Handler is the HTTP handler for the MCP endpoint. It wraps one of
// mcp-go's HTTP transports and delegates to it.
//
// With json_response enabled (the default) each POST gets a plain JSON
// reply from the streamable transport. With it disabled, responses are
// delivered as SSE streams via {path}/sse and {path}/message.
type Handler struct {
	inner  http.Handler
	logger *common.Logger
}

// NewHandler wires the MCP server to the HTTP transport selected by the config.
func NewHandler(cfg *config.Config, srv *Server, logger *common.Logger) *Handler {
	var inner http.Handler
	mode := "json"
	if cfg.Server.JSONResponse {
		inner = mcpserver.NewStreamableHTTPServer(srv.MCPServer(),
			mcpserver.WithStateLess(cfg.Server.Stateless),
		)
	} else {
		mode = "sse"
		base := strings.TrimSuffix(cfg.Server.Path, "/")
		inner = mcpserver.NewSSEServer(srv.MCPServer(),
			mcpserver.WithStaticBasePath(base),
		)
	}

	logger.Info().
		Str("mode", mode).
		Str("path", cfg.Server.Path).
		Bool("stateless", cfg.Server.Stateless).
		Msg("MCP endpoint handler initialized")

	return &Handler{inner: inner, logger: logger}
}

// ServeHTTP delegates to the wrapped mcp-go transport.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.inner.ServeHTTP(w, r)
}
