package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/fmp-mcp/internal/common"
	"github.com/bobmcallan/fmp-mcp/internal/config"
	"github.com/bobmcallan/fmp-mcp/internal/fmp"
	"github.com/bobmcallan/fmp-mcp/internal/mcp"
	"github.com/bobmcallan/fmp-mcp/internal/server"
)

// configPaths is a custom flag type that allows multiple -config flags.
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles  configPaths
	transport    = flag.String("transport", "", "Transport: stdio, sse, or streamable-http (overrides config)")
	serverHost   = flag.String("host", "", "Bind host for HTTP transports (overrides config)")
	serverPort   = flag.Int("port", 0, "Bind port for HTTP transports (overrides config)")
	endpointPath = flag.String("path", "", "Endpoint path for the streamable-http transport (overrides config)")
	stateless    = flag.Bool("stateless", false, "Run streamable-http without session tracking")
	jsonResponse = flag.Bool("json-response", true, "Return plain JSON bodies instead of SSE frames on streamable-http")
	showVersion  = flag.Bool("version", false, "Print version information")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("fmp-mcp version %s\n", config.GetVersion())
		os.Exit(0)
	}

	// Auto-discover config file if not specified.
	// Binary-relative paths are tried first so the config is found even when
	// the working directory differs from the binary location.
	if len(configFiles) == 0 {
		for _, path := range configSearchPaths() {
			if _, err := os.Stat(path); err == nil {
				configFiles = append(configFiles, path)
				break
			}
		}
	}

	cfg, err := config.LoadFromFiles(configFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	config.LoadVersionFromFile()

	// Apply CLI flag overrides (highest priority)
	config.ApplyFlagOverrides(cfg, *transport, *serverHost, *endpointPath, *serverPort)
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "stateless":
			cfg.Server.Stateless = *stateless
		case "json-response":
			cfg.Server.JSONResponse = *jsonResponse
		}
	})

	// Validate mandatory configuration
	if issues := cfg.Validate(); len(issues) > 0 {
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Configuration error: mandatory fields are missing or invalid:")
		fmt.Fprintln(os.Stderr, "")
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "  - %s\n", issue)
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Values can be set via TOML file, FMP_* environment variables, or CLI flags.")
		fmt.Fprintln(os.Stderr, "")
		os.Exit(1)
	}

	logger := setupLogger(cfg)

	logger.Info().
		Str("version", config.GetVersion()).
		Str("transport", cfg.Server.Transport).
		Bool("api_key_configured", cfg.FMP.APIKey != "demo").
		Str("config_files", fmt.Sprintf("%v", configFiles)).
		Msg("starting FMP MCP server")

	if cfg.FMP.APIKey == "demo" {
		logger.Warn().Msg("FMP_API_KEY not set, using the rate-limited demo key")
	}

	client := fmp.NewClient(cfg.FMP, logger)

	srv, err := mcp.NewServer(cfg, client, logger)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("failed to initialize MCP server")
		os.Exit(1)
	}

	switch cfg.Server.Transport {
	case config.TransportStdio:
		runStdio(srv, logger)
	case config.TransportSSE:
		runSSE(cfg, srv, logger)
	case config.TransportStreamableHTTP:
		runStreamableHTTP(cfg, srv, logger)
	}
}

// runStdio serves the MCP session over stdin/stdout. Logs stay on stderr so
// they cannot corrupt the JSON-RPC stream.
func runStdio(srv *mcp.Server, logger *common.Logger) {
	logger.Info().Msg("serving on stdio")

	if err := mcpserver.ServeStdio(srv.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
		os.Exit(1)
	}
}

// runSSE serves the legacy SSE transport: an event stream at /sse and a
// client-to-server message endpoint at /message.
func runSSE(cfg *config.Config, srv *mcp.Server, logger *common.Logger) {
	sse := mcpserver.NewSSEServer(srv.MCPServer())
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	go func() {
		logger.Info().
			Str("address", addr).
			Str("stream", "/sse").
			Str("messages", "/message").
			Msg("serving SSE")

		if err := sse.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error().Str("error", err.Error()).Msg("SSE server failed")
			os.Exit(1)
		}
	}()

	waitForSignal(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sse.Shutdown(ctx); err != nil {
		logger.Error().Str("error", err.Error()).Msg("SSE server shutdown failed")
	}

	logger.Info().Msg("server stopped")
}

// runStreamableHTTP serves MCP over plain HTTP with the health endpoint and
// middleware stack in front.
func runStreamableHTTP(cfg *config.Config, srv *mcp.Server, logger *common.Logger) {
	handler := mcp.NewHandler(cfg, srv, logger)
	httpSrv := server.New(cfg, handler, logger)

	go func() {
		if err := httpSrv.Start(); err != nil {
			logger.Error().Str("error", err.Error()).Msg("server failed to start")
			os.Exit(1)
		}
	}()

	// Give goroutine a moment to start
	time.Sleep(100 * time.Millisecond)

	logger.Info().
		Str("url", fmt.Sprintf("http://%s:%d%s", cfg.Server.Host, cfg.Server.Port, cfg.Server.Path)).
		Msg("MCP endpoint ready")

	waitForSignal(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error().Str("error", err.Error()).Msg("server shutdown failed")
	}

	logger.Info().Msg("server stopped")
}

func waitForSignal(logger *common.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
}

// configSearchPaths returns TOML files to auto-discover (first match wins).
// Binary-relative paths are tried first, with CWD fallbacks after.
// Paths are deduplicated via filepath.Abs.
func configSearchPaths() []string {
	candidates := []string{
		"fmp-mcp.toml",
		"config/fmp-mcp.toml",
	}

	exe, err := os.Executable()
	if err != nil {
		return candidates
	}
	binDir := filepath.Dir(exe)

	paths := []string{
		filepath.Join(binDir, "fmp-mcp.toml"),
		filepath.Join(binDir, "config", "fmp-mcp.toml"),
	}
	paths = append(paths, candidates...)

	// Deduplicate via absolute path.
	seen := make(map[string]bool, len(paths))
	deduped := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		deduped = append(deduped, p)
	}
	return deduped
}

// setupLogger creates an arbor logger based on config.
func setupLogger(cfg *config.Config) *common.Logger {
	return common.NewLoggerFromConfig(common.LoggingConfig{
		Level:      cfg.Logging.Level,
		Outputs:    cfg.Logging.Outputs,
		FilePath:   cfg.Logging.FilePath,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
}
