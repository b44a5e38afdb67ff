package mcp

import (
	"strings"
	"testing"
)

func TestCatalog_ToolCount(t *testing.T) {
	if got := len(Catalog()); got != 12 {
		t.Errorf("expected 12 endpoint tools in catalog, got %d", got)
	}
}

func TestCatalog_AllSpecsValid(t *testing.T) {
	for _, ts := range Catalog() {
		if err := ValidateToolSpec(ts); err != nil {
			t.Errorf("catalog entry %q failed validation: %v", ts.Name, err)
		}
	}
}

func TestCatalog_UniqueToolNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, ts := range Catalog() {
		if seen[ts.Name] {
			t.Errorf("duplicate catalog tool name %q", ts.Name)
		}
		seen[ts.Name] = true
	}
}

func TestCatalog_EndpointMappings(t *testing.T) {
	expected := map[string]string{
		"company_profile":           "profile",
		"income_statement":          "income-statement",
		"balance_sheet":             "balance-sheet-statement",
		"cash_flow":                 "cash-flow-statement",
		"financial_ratios":          "ratios",
		"historical_price_eod_full": "historical-price-eod/full",
		"earnings_call_transcript":  "earning-call-transcript",
		"economic_indicators":       "economic-indicators",
		"economic_calendar":         "economic-calendar",
		"stock_news_latest":         "news/stock-latest",
		"stock_news_search":         "news/stock",
		"insider_trading_latest":    "insider-trading/latest",
	}

	for _, ts := range Catalog() {
		endpoint, ok := expected[ts.Name]
		if !ok {
			t.Errorf("unexpected catalog tool %q", ts.Name)
			continue
		}
		if ts.Endpoint != endpoint {
			t.Errorf("tool %q: expected endpoint %q, got %q", ts.Name, endpoint, ts.Endpoint)
		}
	}
}

func TestCatalog_RequiredParams(t *testing.T) {
	expected := map[string][]string{
		"company_profile":           {"symbol"},
		"income_statement":          {"symbol"},
		"balance_sheet":             {"symbol"},
		"cash_flow":                 {"symbol"},
		"financial_ratios":          {"symbol"},
		"historical_price_eod_full": {"symbol"},
		"earnings_call_transcript":  {"symbol", "year", "quarter"},
		"economic_indicators":       {"name"},
		"economic_calendar":         {},
		"stock_news_latest":         {},
		"stock_news_search":         {"symbols"},
		"insider_trading_latest":    {},
	}

	for _, ts := range Catalog() {
		var required []string
		for _, p := range ts.Params {
			if p.Required {
				required = append(required, p.Name)
			}
		}
		want := expected[ts.Name]
		if len(required) != len(want) {
			t.Errorf("tool %q: expected required params %v, got %v", ts.Name, want, required)
			continue
		}
		for i := range want {
			if required[i] != want[i] {
				t.Errorf("tool %q: expected required params %v, got %v", ts.Name, want, required)
			}
		}
	}
}

func TestCatalog_StatementDefaults(t *testing.T) {
	for _, name := range []string{"income_statement", "balance_sheet", "cash_flow", "financial_ratios"} {
		ts := findToolSpec(t, name)
		defaults := make(map[string]string)
		for _, p := range ts.Params {
			defaults[p.Name] = p.Default
		}
		if defaults["limit"] != "5" {
			t.Errorf("tool %q: expected limit default 5, got %q", name, defaults["limit"])
		}
		if defaults["period"] != "annual" {
			t.Errorf("tool %q: expected period default annual, got %q", name, defaults["period"])
		}
	}
}

func TestCatalog_NewsDefaults(t *testing.T) {
	for _, name := range []string{"stock_news_latest", "stock_news_search"} {
		ts := findToolSpec(t, name)
		defaults := make(map[string]string)
		for _, p := range ts.Params {
			defaults[p.Name] = p.Default
		}
		if defaults["page"] != "0" {
			t.Errorf("tool %q: expected page default 0, got %q", name, defaults["page"])
		}
		if defaults["limit"] != "20" {
			t.Errorf("tool %q: expected limit default 20, got %q", name, defaults["limit"])
		}
	}
}

func TestCatalog_InsiderDefaults(t *testing.T) {
	ts := findToolSpec(t, "insider_trading_latest")
	defaults := make(map[string]string)
	for _, p := range ts.Params {
		defaults[p.Name] = p.Default
	}
	if defaults["page"] != "0" {
		t.Errorf("expected page default 0, got %q", defaults["page"])
	}
	if defaults["limit"] != "100" {
		t.Errorf("expected limit default 100, got %q", defaults["limit"])
	}
	if defaults["date"] != "" {
		t.Errorf("expected date to have no default, got %q", defaults["date"])
	}
}

func TestCatalog_DateRangeQueryKeys(t *testing.T) {
	for _, name := range []string{
		"historical_price_eod_full",
		"economic_indicators",
		"economic_calendar",
		"stock_news_latest",
		"stock_news_search",
	} {
		ts := findToolSpec(t, name)
		keys := make(map[string]string)
		for _, p := range ts.Params {
			keys[p.Name] = p.queryKey()
		}
		if keys["date_from"] != "from" {
			t.Errorf("tool %q: expected date_from to map to from, got %q", name, keys["date_from"])
		}
		if keys["date_to"] != "to" {
			t.Errorf("tool %q: expected date_to to map to to, got %q", name, keys["date_to"])
		}
	}
}

func TestParamSpec_QueryKeyDefaultsToName(t *testing.T) {
	p := ParamSpec{Name: "symbol", Type: "string"}
	if p.queryKey() != "symbol" {
		t.Errorf("expected query key symbol, got %q", p.queryKey())
	}
}

// --- ValidateToolSpec Tests ---

func TestValidateToolSpec_Valid(t *testing.T) {
	ts := ToolSpec{Name: "test_tool", Endpoint: "test", Params: []ParamSpec{
		{Name: "symbol", Type: "string", Required: true},
	}}
	if err := ValidateToolSpec(ts); err != nil {
		t.Errorf("expected valid spec, got error: %v", err)
	}
}

func TestValidateToolSpec_EmptyName(t *testing.T) {
	ts := ToolSpec{Name: "", Endpoint: "test"}
	if err := ValidateToolSpec(ts); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestValidateToolSpec_EmptyEndpoint(t *testing.T) {
	ts := ToolSpec{Name: "test_tool", Endpoint: ""}
	if err := ValidateToolSpec(ts); err == nil {
		t.Error("expected error for empty endpoint")
	}
}

func TestValidateToolSpec_EndpointTraversal(t *testing.T) {
	ts := ToolSpec{Name: "test_tool", Endpoint: "../etc/passwd"}
	if err := ValidateToolSpec(ts); err == nil {
		t.Error("expected error for endpoint traversal")
	}
}

func TestValidateToolSpec_AbsoluteEndpoint(t *testing.T) {
	ts := ToolSpec{Name: "test_tool", Endpoint: "/profile"}
	if err := ValidateToolSpec(ts); err == nil {
		t.Error("expected error for absolute endpoint")
	}
}

func TestValidateToolSpec_EndpointWithQuery(t *testing.T) {
	ts := ToolSpec{Name: "test_tool", Endpoint: "profile?symbol=AAPL"}
	if err := ValidateToolSpec(ts); err == nil {
		t.Error("expected error for endpoint carrying a query string")
	}
}

func TestValidateToolSpec_UnsupportedParamType(t *testing.T) {
	ts := ToolSpec{Name: "test_tool", Endpoint: "test", Params: []ParamSpec{
		{Name: "items", Type: "array"},
	}}
	if err := ValidateToolSpec(ts); err == nil {
		t.Error("expected error for unsupported param type array")
	}
}

func TestValidateToolSpec_EmptyParamName(t *testing.T) {
	ts := ToolSpec{Name: "test_tool", Endpoint: "test", Params: []ParamSpec{
		{Name: "", Type: "string"},
	}}
	if err := ValidateToolSpec(ts); err == nil {
		t.Error("expected error for empty param name")
	}
}

func TestValidateToolSpec_DuplicateParam(t *testing.T) {
	ts := ToolSpec{Name: "test_tool", Endpoint: "test", Params: []ParamSpec{
		{Name: "symbol", Type: "string"},
		{Name: "symbol", Type: "string"},
	}}
	if err := ValidateToolSpec(ts); err == nil {
		t.Error("expected error for duplicate param")
	}
}

func TestValidateToolSpec_RequiredWithDefault(t *testing.T) {
	ts := ToolSpec{Name: "test_tool", Endpoint: "test", Params: []ParamSpec{
		{Name: "limit", Type: "number", Required: true, Default: "5"},
	}}
	if err := ValidateToolSpec(ts); err == nil {
		t.Error("expected error for required param with default")
	}
}

// --- BuildTool Tests ---

func TestBuildTool_NameAndDescription(t *testing.T) {
	ts := findToolSpec(t, "company_profile")
	tool := BuildTool(ts)

	if tool.Name != "company_profile" {
		t.Errorf("expected name company_profile, got %q", tool.Name)
	}
	if !strings.Contains(tool.Description, "company profile") {
		t.Errorf("unexpected description: %s", tool.Description)
	}
}

func TestBuildTool_SchemaProperties(t *testing.T) {
	ts := findToolSpec(t, "income_statement")
	tool := BuildTool(ts)

	schema := tool.InputSchema
	for _, name := range []string{"symbol", "limit", "period"} {
		if _, exists := schema.Properties[name]; !exists {
			t.Errorf("expected %q in tool schema properties", name)
		}
	}
}

func TestBuildTool_RequiredParam(t *testing.T) {
	ts := findToolSpec(t, "income_statement")
	tool := BuildTool(ts)

	found := false
	for _, r := range tool.InputSchema.Required {
		if r == "symbol" {
			found = true
		}
		if r == "limit" || r == "period" {
			t.Errorf("expected %q to NOT be in required list", r)
		}
	}
	if !found {
		t.Error("expected 'symbol' in required list")
	}
}

func TestBuildTool_NumberParam(t *testing.T) {
	ts := findToolSpec(t, "earnings_call_transcript")
	tool := BuildTool(ts)

	yearProp, exists := tool.InputSchema.Properties["year"]
	if !exists {
		t.Fatal("expected 'year' in tool schema properties")
	}
	propMap, ok := yearProp.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map for year property, got %T", yearProp)
	}
	if propMap["type"] != "number" {
		t.Errorf("expected type 'number', got %v", propMap["type"])
	}
}

func TestBuildTool_DefaultAdvertised(t *testing.T) {
	ts := findToolSpec(t, "income_statement")
	tool := BuildTool(ts)

	periodProp := tool.InputSchema.Properties["period"].(map[string]interface{})
	if periodProp["default"] != "annual" {
		t.Errorf("expected period default annual in schema, got %v", periodProp["default"])
	}

	limitProp := tool.InputSchema.Properties["limit"].(map[string]interface{})
	if limitProp["default"] != float64(5) {
		t.Errorf("expected limit default 5 in schema, got %v", limitProp["default"])
	}
}

func TestBuildTool_BooleanParam(t *testing.T) {
	ts := ToolSpec{
		Name:        "test_tool",
		Description: "Test.",
		Endpoint:    "test",
		Params: []ParamSpec{
			{Name: "include_news", Type: "boolean", Description: "Include news."},
		},
	}
	tool := BuildTool(ts)

	prop, exists := tool.InputSchema.Properties["include_news"]
	if !exists {
		t.Fatal("expected 'include_news' in tool schema properties")
	}
	propMap, ok := prop.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map for include_news property, got %T", prop)
	}
	if propMap["type"] != "boolean" {
		t.Errorf("expected type 'boolean', got %v", propMap["type"])
	}
}
