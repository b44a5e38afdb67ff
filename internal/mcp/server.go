package mcp

import (
	"github.com/bobmcallan/fmp-mcp/internal/common"
	"github.com/bobmcallan/fmp-mcp/internal/config"
	"github.com/bobmcallan/fmp-mcp/internal/fmp"
	"github.com/mark3labs/mcp-go/server"
)

// Server bundles the MCP protocol server with its tool registry and the
// upstream FMP client.
type Server struct {
	mcpServer *server.MCPServer
	registry  *Registry
	client    *fmp.Client
	logger    *common.Logger
}

// NewServer builds the complete MCP server: every catalog tool plus the
// local diagnostic tools, the readme resource, and the tool selection prompt.
// The registry is sealed before any transport can serve it.
func NewServer(cfg *config.Config, client *fmp.Client, logger *common.Logger) (*Server, error) {
	registry := NewRegistry()
	if err := RegisterTools(registry, client); err != nil {
		return nil, err
	}
	registry.Seal()

	s := server.NewMCPServer(
		cfg.Server.Name,
		config.GetVersion(),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
	)
	registry.Attach(s)
	RegisterResources(s)
	RegisterPrompts(s)

	logger.Info().
		Int("tools", registry.Len()).
		Str("base_url", client.BaseURL()).
		Msg("MCP server initialized")

	return &Server{
		mcpServer: s,
		registry:  registry,
		client:    client,
		logger:    logger,
	}, nil
}

// MCPServer returns the underlying protocol server for transport wiring.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Registry returns the sealed tool registry.
func (s *Server) Registry() *Registry {
	return s.registry
}
