package mcp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// allowedParamTypes is the whitelist of JSON schema types for catalog parameters.
var allowedParamTypes = map[string]bool{
	"string": true, "number": true, "boolean": true,
}

// ToolSpec describes one FMP endpoint exposed as an MCP tool.
type ToolSpec struct {
	Name        string
	Description string
	Endpoint    string // path under the FMP base URL, e.g. "income-statement"
	Params      []ParamSpec
}

// ParamSpec describes one parameter of a catalog tool.
type ParamSpec struct {
	Name        string
	Type        string // string, number, boolean
	Description string
	QueryKey    string // upstream query key when it differs from Name
	Required    bool
	Default     string // query value sent when the argument is absent
}

// queryKey returns the upstream query key for the parameter.
func (p ParamSpec) queryKey() string {
	if p.QueryKey != "" {
		return p.QueryKey
	}
	return p.Name
}

// Catalog returns the full set of FMP endpoint tools in registration order.
func Catalog() []ToolSpec {
	return []ToolSpec{
		{
			Name: "company_profile",
			Description: "Get a detailed company profile for a single symbol: current price, market cap, beta, " +
				"sector, industry, CEO, global identifiers (CIK, ISIN, CUSIP), and contact details. " +
				"Use this for a company's current snapshot; use the statement tools for periodized financials.",
			Endpoint: "profile",
			Params: []ParamSpec{
				{Name: "symbol", Type: "string", Description: "Ticker symbol (e.g., AAPL).", Required: true},
			},
		},
		{
			Name: "income_statement",
			Description: "Get real-time and historical income statements: revenue, cost of revenue, gross profit, " +
				"operating income, net income, and EPS by period. " +
				"Pull multiple periods to analyze profitability trends or compare margins across peers.",
			Endpoint: "income-statement",
			Params: []ParamSpec{
				{Name: "symbol", Type: "string", Description: "Ticker symbol (e.g., AAPL).", Required: true},
				{Name: "limit", Type: "number", Description: "Number of periods to return.", Default: "5"},
				{Name: "period", Type: "string", Description: "Reporting period: annual, quarter, or explicit tags like Q1..Q4 and FY.", Default: "annual"},
			},
		},
		{
			Name: "balance_sheet",
			Description: "Get balance sheet statements: current and noncurrent assets, liabilities, and shareholder " +
				"equity by period. Use this for capital structure, leverage, and working-capital analysis; " +
				"use cash_flow for cash generation.",
			Endpoint: "balance-sheet-statement",
			Params: []ParamSpec{
				{Name: "symbol", Type: "string", Description: "Ticker symbol (e.g., AAPL).", Required: true},
				{Name: "limit", Type: "number", Description: "Number of periods to return.", Default: "5"},
				{Name: "period", Type: "string", Description: "Reporting period: annual, quarter, or explicit tags like Q1..Q4 and FY.", Default: "annual"},
			},
		},
		{
			Name: "cash_flow",
			Description: "Get cash flow statements: operating, investing, and financing cash flows plus free cash " +
				"flow and capital expenditure by period. " +
				"Use this to evaluate cash generation and the sustainability of dividends or buybacks.",
			Endpoint: "cash-flow-statement",
			Params: []ParamSpec{
				{Name: "symbol", Type: "string", Description: "Ticker symbol (e.g., AAPL).", Required: true},
				{Name: "limit", Type: "number", Description: "Number of periods to return.", Default: "5"},
				{Name: "period", Type: "string", Description: "Reporting period: annual, quarter, or explicit tags like Q1..Q4 and FY.", Default: "annual"},
			},
		},
		{
			Name: "financial_ratios",
			Description: "Get ready-made financial ratios by period: profitability margins, liquidity ratios " +
				"(current, quick, cash), efficiency turnovers, and valuation multiples such as price-to-earnings " +
				"and debt-to-equity. Use the statement tools instead when you need raw lines to compute custom metrics.",
			Endpoint: "ratios",
			Params: []ParamSpec{
				{Name: "symbol", Type: "string", Description: "Ticker symbol (e.g., AAPL).", Required: true},
				{Name: "limit", Type: "number", Description: "Number of periods to return.", Default: "5"},
				{Name: "period", Type: "string", Description: "Reporting period: annual, quarter, or explicit tags like Q1..Q4 and FY.", Default: "annual"},
			},
		},
		{
			Name: "historical_price_eod_full",
			Description: "Get full daily price and volume history: open, high, low, close, volume, VWAP, and " +
				"day-over-day change for each trading day, optionally bounded by a date range. " +
				"Daily bars only; intraday and realtime ticks are not provided.",
			Endpoint: "historical-price-eod/full",
			Params: []ParamSpec{
				{Name: "symbol", Type: "string", Description: "Ticker symbol (e.g., AAPL).", Required: true},
				{Name: "date_from", Type: "string", Description: "Optional start date YYYY-MM-DD.", QueryKey: "from"},
				{Name: "date_to", Type: "string", Description: "Optional end date YYYY-MM-DD.", QueryKey: "to"},
			},
		},
		{
			Name: "earnings_call_transcript",
			Description: "Get the full text of a company's earnings call for a given fiscal year and quarter, " +
				"covering prepared remarks and Q&A. Use this to analyze management tone, strategy, and risk " +
				"disclosures; use the statement tools for numeric KPIs.",
			Endpoint: "earning-call-transcript",
			Params: []ParamSpec{
				{Name: "symbol", Type: "string", Description: "Ticker symbol (e.g., AAPL).", Required: true},
				{Name: "year", Type: "number", Description: "Fiscal year (e.g., 2020).", Required: true},
				{Name: "quarter", Type: "number", Description: "Fiscal quarter number 1..4.", Required: true},
				{Name: "limit", Type: "number", Description: "Optional number of records to return."},
			},
		},
		{
			Name: "economic_indicators",
			Description: "Get real-time and historical values for macro indicators such as GDP, CPI, inflationRate, " +
				"or unemploymentRate, optionally bounded by a date range (max 90-day span). " +
				"Use economic_calendar for release timing instead.",
			Endpoint: "economic-indicators",
			Params: []ParamSpec{
				{Name: "name", Type: "string", Description: "Indicator name (e.g., GDP, CPI, unemploymentRate).", Required: true},
				{Name: "date_from", Type: "string", Description: "Optional start date YYYY-MM-DD.", QueryKey: "from"},
				{Name: "date_to", Type: "string", Description: "Optional end date YYYY-MM-DD.", QueryKey: "to"},
			},
		},
		{
			Name: "economic_calendar",
			Description: "Get the schedule of economic data releases with event timing, country, currency, impact " +
				"level, and actual/estimate/previous values. " +
				"Use this to plan around market-moving events such as CPI or rate decisions.",
			Endpoint: "economic-calendar",
			Params: []ParamSpec{
				{Name: "date_from", Type: "string", Description: "Optional start date YYYY-MM-DD.", QueryKey: "from"},
				{Name: "date_to", Type: "string", Description: "Optional end date YYYY-MM-DD.", QueryKey: "to"},
			},
		},
		{
			Name: "stock_news_latest",
			Description: "Get the latest market and stock news headlines with publisher, publish date, snippet, " +
				"and URL, paged and optionally date-bounded. Use stock_news_search for ticker-filtered news.",
			Endpoint: "news/stock-latest",
			Params: []ParamSpec{
				{Name: "page", Type: "number", Description: "Zero-based page index.", Default: "0"},
				{Name: "limit", Type: "number", Description: "Page size (max 250).", Default: "20"},
				{Name: "date_from", Type: "string", Description: "Optional earliest date YYYY-MM-DD.", QueryKey: "from"},
				{Name: "date_to", Type: "string", Description: "Optional latest date YYYY-MM-DD.", QueryKey: "to"},
			},
		},
		{
			Name: "stock_news_search",
			Description: "Search stock news filtered to specific tickers, paged and optionally date-bounded. " +
				"Use stock_news_latest for a broad unfiltered feed.",
			Endpoint: "news/stock",
			Params: []ParamSpec{
				{Name: "symbols", Type: "string", Description: "Comma-separated ticker symbols (e.g., AAPL,MSFT).", Required: true},
				{Name: "page", Type: "number", Description: "Zero-based page index.", Default: "0"},
				{Name: "limit", Type: "number", Description: "Page size (max 250).", Default: "20"},
				{Name: "date_from", Type: "string", Description: "Optional start date YYYY-MM-DD.", QueryKey: "from"},
				{Name: "date_to", Type: "string", Description: "Optional end date YYYY-MM-DD.", QueryKey: "to"},
			},
		},
		{
			Name: "insider_trading_latest",
			Description: "Get the latest insider trades across the market: transaction dates, form types, share " +
				"counts, prices, and the insider's name and role, with SEC filing links where available.",
			Endpoint: "insider-trading/latest",
			Params: []ParamSpec{
				{Name: "page", Type: "number", Description: "Zero-based page index.", Default: "0"},
				{Name: "limit", Type: "number", Description: "Number of records per page (max 1000).", Default: "100"},
				{Name: "date", Type: "string", Description: "Optional specific date YYYY-MM-DD to filter."},
			},
		},
	}
}

// ValidateToolSpec validates a single catalog entry.
func ValidateToolSpec(ts ToolSpec) error {
	if ts.Name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if ts.Endpoint == "" {
		return fmt.Errorf("tool %q has empty endpoint", ts.Name)
	}
	if strings.Contains(ts.Endpoint, "..") {
		return fmt.Errorf("tool %q has invalid endpoint %q (contains ..)", ts.Name, ts.Endpoint)
	}
	if strings.HasPrefix(ts.Endpoint, "/") {
		return fmt.Errorf("tool %q has invalid endpoint %q (must be relative)", ts.Name, ts.Endpoint)
	}
	if strings.Contains(ts.Endpoint, "?") {
		return fmt.Errorf("tool %q has invalid endpoint %q (query strings belong in params)", ts.Name, ts.Endpoint)
	}
	seen := make(map[string]bool, len(ts.Params))
	for _, p := range ts.Params {
		if p.Name == "" {
			return fmt.Errorf("tool %q has a parameter with empty name", ts.Name)
		}
		if !allowedParamTypes[p.Type] {
			return fmt.Errorf("tool %q parameter %q has unsupported type %q", ts.Name, p.Name, p.Type)
		}
		if seen[p.Name] {
			return fmt.Errorf("tool %q has duplicate parameter %q", ts.Name, p.Name)
		}
		if p.Required && p.Default != "" {
			return fmt.Errorf("tool %q parameter %q is required but has a default", ts.Name, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// BuildTool converts a ToolSpec into an mcp.Tool with the appropriate schema.
func BuildTool(ts ToolSpec) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(ts.Description)}
	for _, p := range ts.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(ts.Name, opts...)
}

// buildParamOption maps a ParamSpec to the appropriate mcp-go tool option.
func buildParamOption(p ParamSpec) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}

	switch p.Type {
	case "number":
		if p.Default != "" {
			if f, err := strconv.ParseFloat(p.Default, 64); err == nil {
				opts = append(opts, mcp.DefaultNumber(f))
			}
		}
		return mcp.WithNumber(p.Name, opts...)
	case "boolean":
		if p.Default != "" {
			if b, err := strconv.ParseBool(p.Default); err == nil {
				opts = append(opts, mcp.DefaultBool(b))
			}
		}
		return mcp.WithBoolean(p.Name, opts...)
	default:
		if p.Default != "" {
			opts = append(opts, mcp.DefaultString(p.Default))
		}
		return mcp.WithString(p.Name, opts...)
	}
}
