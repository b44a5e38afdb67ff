// Package config handles configuration for the FMP MCP server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Transport names accepted by server.transport.
const (
	TransportStdio          = "stdio"
	TransportSSE            = "sse"
	TransportStreamableHTTP = "streamable-http"
)

// Config holds all configuration for the server.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	FMP     FMPConfig     `toml:"fmp"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig holds transport and HTTP listener settings.
type ServerConfig struct {
	Name         string `toml:"name"`
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	Path         string `toml:"path"`
	Transport    string `toml:"transport"`
	Stateless    bool   `toml:"stateless"`
	JSONResponse bool   `toml:"json_response"`
}

// FMPConfig holds Financial Modeling Prep API settings.
type FMPConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses the timeout duration string, defaulting to 30 seconds.
func (c FMPConfig) GetTimeout() time.Duration {
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil {
			return d
		}
	}
	return 30 * time.Second
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// NewDefaultConfig returns a config with default values. The defaults match
// the original CLI surface: stdio transport, 127.0.0.1:8000, /mcp/ path, and
// the rate-limited "demo" key until FMP_API_KEY is set.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:         "fmp",
			Host:         "127.0.0.1",
			Port:         8000,
			Path:         "/mcp/",
			Transport:    TransportStdio,
			Stateless:    false,
			JSONResponse: true,
		},
		FMP: FMPConfig{
			BaseURL: "https://financialmodelingprep.com/stable",
			APIKey:  "demo",
			Timeout: "30s",
		},
		Logging: LoggingConfig{
			Level:   "info",
			Outputs: []string{"console"},
		},
	}
}

// LoadFromFiles loads configuration from TOML files in order, with later
// files overriding earlier ones. Starts from defaults, then applies
// environment variable overrides after all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	cfg := NewDefaultConfig()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FMP_API_KEY"); v != "" {
		cfg.FMP.APIKey = v
	}
	if v := os.Getenv("FMP_BASE_URL"); v != "" {
		cfg.FMP.BaseURL = v
	}
	if v := os.Getenv("FMP_MCP_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("FMP_MCP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FMP_MCP_PATH"); v != "" {
		cfg.Server.Path = v
	}
	if v := os.Getenv("FMP_MCP_TRANSPORT"); v != "" {
		cfg.Server.Transport = v
	}
	if v := os.Getenv("FMP_MCP_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// ApplyFlagOverrides applies command-line flag values over the loaded config.
// Zero values mean the flag was not set.
func ApplyFlagOverrides(cfg *Config, transport, host, path string, port int) {
	if transport != "" {
		cfg.Server.Transport = transport
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if path != "" {
		cfg.Server.Path = path
	}
	if port > 0 {
		cfg.Server.Port = port
	}
}

// Validate returns a list of configuration problems, empty when the config
// is usable. Callers are expected to treat a non-empty result as fatal.
func (c *Config) Validate() []string {
	var problems []string

	switch c.Server.Transport {
	case TransportStdio, TransportSSE, TransportStreamableHTTP:
	default:
		problems = append(problems, fmt.Sprintf("server.transport must be stdio, sse, or streamable-http (got %q)", c.Server.Transport))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if c.Server.Transport == TransportStreamableHTTP && c.Server.Path == "" {
		problems = append(problems, "server.path must not be empty for the streamable-http transport")
	}
	if c.FMP.BaseURL == "" {
		problems = append(problems, "fmp.base_url must not be empty")
	}
	if c.FMP.APIKey == "" {
		problems = append(problems, "fmp.api_key must not be empty (set FMP_API_KEY)")
	}
	if c.FMP.Timeout != "" {
		if _, err := time.ParseDuration(c.FMP.Timeout); err != nil {
			problems = append(problems, fmt.Sprintf("fmp.timeout is not a valid duration: %q", c.FMP.Timeout))
		}
	}

	return problems
}
