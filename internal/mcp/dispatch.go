package mcp

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bobmcallan/fmp-mcp/internal/fmp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// EndpointToolHandler creates a handler that routes an MCP tool call to the
// FMP endpoint declared in its ToolSpec. Argument problems and upstream
// failures are reported as tool error results, never as protocol errors.
func EndpointToolHandler(client *fmp.Client, ts ToolSpec) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := r.GetArguments()

		if err := checkArguments(ts, args); err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		query := url.Values{}
		for _, p := range ts.Params {
			raw, ok := args[p.Name]
			if !ok {
				if p.Default != "" {
					query.Set(p.queryKey(), p.Default)
				}
				continue
			}
			value, err := formatArgument(ts.Name, p, raw)
			if err != nil {
				return errorResult(fmt.Sprintf("Error: %v", err)), nil
			}
			// Empty optional strings behave as absent, matching callers that
			// pass "" instead of omitting the argument.
			if value == "" {
				if p.Default != "" {
					query.Set(p.queryKey(), p.Default)
				}
				continue
			}
			query.Set(p.queryKey(), value)
		}

		body, err := client.Get(ctx, ts.Endpoint, query)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return textResult(string(body)), nil
	}
}

// checkArguments rejects arguments the tool does not declare and verifies
// every required parameter is present and non-empty.
func checkArguments(ts ToolSpec, args map[string]interface{}) error {
	declared := make(map[string]bool, len(ts.Params))
	for _, p := range ts.Params {
		declared[p.Name] = true
	}
	for name := range args {
		if !declared[name] {
			return &UnknownParameterError{Tool: ts.Name, Param: name}
		}
	}
	for _, p := range ts.Params {
		if !p.Required {
			continue
		}
		raw, ok := args[p.Name]
		if !ok {
			return &MissingParameterError{Tool: ts.Name, Param: p.Name}
		}
		if s, isString := raw.(string); isString && s == "" {
			return &MissingParameterError{Tool: ts.Name, Param: p.Name}
		}
	}
	return nil
}

// formatArgument converts a JSON argument value into its query string form.
// Numbers arrive as float64 from JSON decoding; integral values format
// without a fractional part so limit=5 becomes "5", not "5.000000".
func formatArgument(tool string, p ParamSpec, raw interface{}) (string, error) {
	switch p.Type {
	case "number":
		switch v := raw.(type) {
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		case int:
			return strconv.Itoa(v), nil
		case int64:
			return strconv.FormatInt(v, 10), nil
		default:
			return "", &InvalidParameterTypeError{Tool: tool, Param: p.Name, Want: "number"}
		}
	case "boolean":
		v, ok := raw.(bool)
		if !ok {
			return "", &InvalidParameterTypeError{Tool: tool, Param: p.Name, Want: "boolean"}
		}
		return strconv.FormatBool(v), nil
	default:
		v, ok := raw.(string)
		if !ok {
			return "", &InvalidParameterTypeError{Tool: tool, Param: p.Name, Want: "string"}
		}
		return v, nil
	}
}
