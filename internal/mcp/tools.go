package mcp

import (
	"context"
	"encoding/json"

	"github.com/bobmcallan/fmp-mcp/internal/fmp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools validates and registers every catalog tool plus the local
// diagnostic tools on the registry.
func RegisterTools(r *Registry, client *fmp.Client) error {
	for _, ts := range Catalog() {
		if err := ValidateToolSpec(ts); err != nil {
			return err
		}
		if err := r.Register(BuildTool(ts), EndpointToolHandler(client, ts)); err != nil {
			return err
		}
	}
	if err := r.Register(PingTool(), PingToolHandler(client)); err != nil {
		return err
	}
	if err := r.Register(UsageTool(), UsageToolHandler()); err != nil {
		return err
	}
	return nil
}

// PingTool returns the mcp.Tool definition for the ping health check.
func PingTool() mcp.Tool {
	return mcp.NewTool("ping",
		mcp.WithDescription("Health check for this MCP server. Use this to verify connectivity."),
	)
}

// PingToolHandler returns a handler that reports the server as reachable
// along with the configured upstream base URL. It makes no upstream call.
func PingToolHandler(client *fmp.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := json.Marshal(struct {
			OK      bool   `json:"ok"`
			BaseURL string `json:"base_url"`
		}{
			OK:      true,
			BaseURL: client.BaseURL(),
		})
		if err != nil {
			return errorResult("failed to marshal ping response"), nil
		}
		return textResult(string(out)), nil
	}
}

// UsageTool returns the mcp.Tool definition for the router hint tool.
func UsageTool() mcp.Tool {
	return mcp.NewTool("when_should_i_use_fmp",
		mcp.WithDescription("Guidance on when this server is appropriate versus other data sources, with a quick map from intent to tool."),
	)
}

// usageGuide is the static routing guidance returned by when_should_i_use_fmp.
type usageGuide struct {
	UseWhen   []string          `json:"use_when"`
	AvoidWhen []string          `json:"avoid_when"`
	QuickMap  map[string]string `json:"quick_map"`
}

// UsageToolHandler returns a handler serving static routing guidance.
func UsageToolHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		guide := usageGuide{
			UseWhen: []string{
				"You need fundamentals/ratios/statements for a ticker",
				"You need OHLCV daily prices",
				"You need earnings transcripts text",
				"You need macro indicators or economic calendar",
				"You need latest stock news or insider trades",
			},
			AvoidWhen: []string{
				"Trading/execution actions",
				"Full SEC filings beyond transcripts",
				"Realtime tick/quote level market data",
			},
			QuickMap: map[string]string{
				"snapshot":   "company_profile",
				"pnl":        "income_statement",
				"balance":    "balance_sheet",
				"cash":       "cash_flow",
				"ratios":     "financial_ratios",
				"prices":     "historical_price_eod_full",
				"transcript": "earnings_call_transcript",
				"macro":      "economic_indicators",
				"calendar":   "economic_calendar",
				"news":       "stock_news_latest / stock_news_search",
				"insiders":   "insider_trading_latest",
			},
		}
		out, err := json.Marshal(guide)
		if err != nil {
			return errorResult("failed to marshal usage guidance"), nil
		}
		return textResult(string(out)), nil
	}
}
