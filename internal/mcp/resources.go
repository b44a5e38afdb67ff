package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// readmeURI is the well-known URI of the server usage resource.
const readmeURI = "fmp:readme"

const readmeText = `FMP MCP Server README

Use this server when:
  - You need real financial data from Financial Modeling Prep (/stable):
    company profiles, income statements, balance sheets, cash flows,
    financial ratios, full daily OHLCV, earnings call transcripts,
    macro indicators, economic calendar, stock news, or insider trades.
  - The task mentions tickers (e.g., AAPL, MSFT, TSLA), fundamentals/valuation,
    earnings transcripts, macro/CPI/Fed calendar, or insider transactions.

Not a fit when:
  - You need order execution, brokerage actions, Level II order book, or real-time ticks.
  - You need complete SEC filing documents beyond transcripts (use an SEC-focused tool).

Authentication:
  - Set FMP_API_KEY (falls back to demo with tight limits).

Quick start:
  - Try company_profile(symbol="AAPL") then financial_ratios(symbol="AAPL").
`

const howToUsePrompt = "If the user asks for stock fundamentals, ratios, financial statements, " +
	"earnings call transcripts, macro indicators, economic calendars, insider trades, " +
	"or daily OHLCV, choose an FMP tool. Map user intent:\n" +
	"- Snapshot/company facts -> company_profile\n" +
	"- Periodized P&L -> income_statement\n" +
	"- Balance sheet items -> balance_sheet\n" +
	"- Cash generation/free cash flow -> cash_flow\n" +
	"- Ratios/valuation/liquidity -> financial_ratios\n" +
	"- Daily price series -> historical_price_eod_full\n" +
	"- Earnings call text -> earnings_call_transcript\n" +
	"- Macro time series -> economic_indicators\n" +
	"- Release schedule -> economic_calendar\n" +
	"- Latest news / ticker-filtered news -> stock_news_latest / stock_news_search\n" +
	"- Insider transactions -> insider_trading_latest\n" +
	"Prefer the most specific tool; avoid calling multiple tools unless necessary."

// RegisterResources adds the readme resource so clients can discover when
// this server is the right data source.
func RegisterResources(s *server.MCPServer) {
	readme := mcp.NewResource(readmeURI, "fmp_readme",
		mcp.WithResourceDescription("When to use this server, authentication notes, and a quick start."),
		mcp.WithMIMEType("text/plain"),
	)
	s.AddResource(readme, func(ctx context.Context, r mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      readmeURI,
				MIMEType: "text/plain",
				Text:     readmeText,
			},
		}, nil
	})
}

// RegisterPrompts adds the tool selection prompt.
func RegisterPrompts(s *server.MCPServer) {
	prompt := mcp.NewPrompt("how_to_use_fmp",
		mcp.WithPromptDescription("Routing guidance mapping user intent to the right FMP tool."),
	)
	s.AddPrompt(prompt, func(ctx context.Context, r mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return mcp.NewGetPromptResult("How to choose FMP tools", []mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(howToUsePrompt)),
		}), nil
	})
}
