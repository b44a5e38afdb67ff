package mcp

import (
	"context"
	"errors"
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func noopHandler() mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, r mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		return textResult("ok"), nil
	}
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	r := NewRegistry()

	tool := mcpgo.NewTool("ping", mcpgo.WithDescription("Health check."))
	if err := r.Register(tool, noopHandler()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	resolved, handler, err := r.Resolve("ping")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.Name != "ping" {
		t.Errorf("expected tool name ping, got %q", resolved.Name)
	}
	if handler == nil {
		t.Error("expected non-nil handler")
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := NewRegistry()

	tool := mcpgo.NewTool("ping")
	if err := r.Register(tool, noopHandler()); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	err := r.Register(tool, noopHandler())
	if err == nil {
		t.Fatal("expected error for duplicate registration")
	}
	var dup *DuplicateToolError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicateToolError, got %T: %v", err, err)
	}
	if dup.Name != "ping" {
		t.Errorf("expected duplicate name ping, got %q", dup.Name)
	}
	if r.Len() != 1 {
		t.Errorf("expected registry to keep 1 tool, got %d", r.Len())
	}
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	r := NewRegistry()

	_, _, err := r.Resolve("nope")
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
	var unknown *UnknownToolError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownToolError, got %T: %v", err, err)
	}
	if unknown.Name != "nope" {
		t.Errorf("expected unknown name nope, got %q", unknown.Name)
	}
}

func TestRegistry_RegisterAfterSeal(t *testing.T) {
	r := NewRegistry()
	r.Seal()

	if !r.Sealed() {
		t.Fatal("expected registry to report sealed")
	}
	if err := r.Register(mcpgo.NewTool("late"), noopHandler()); err == nil {
		t.Error("expected error when registering after Seal")
	}
	if r.Len() != 0 {
		t.Errorf("expected 0 tools after rejected registration, got %d", r.Len())
	}
}

func TestRegistry_RejectsEmptyName(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(mcpgo.Tool{}, noopHandler()); err == nil {
		t.Error("expected error for empty tool name")
	}
}

func TestRegistry_RejectsNilHandler(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(mcpgo.NewTool("ping"), nil); err == nil {
		t.Error("expected error for nil handler")
	}
}

func TestRegistry_NamesInRegistrationOrder(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"charlie", "alpha", "bravo"} {
		if err := r.Register(mcpgo.NewTool(name), noopHandler()); err != nil {
			t.Fatalf("Register %s failed: %v", name, err)
		}
	}

	names := r.Names()
	expected := []string{"charlie", "alpha", "bravo"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d names, got %d", len(expected), len(names))
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("expected %q at position %d, got %q", expected[i], i, names[i])
		}
	}
}

func TestRegistry_NamesReturnsCopy(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(mcpgo.NewTool("ping"), noopHandler()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	names := r.Names()
	names[0] = "mutated"

	if r.Names()[0] != "ping" {
		t.Error("expected Names to return a copy, registry order was mutated")
	}
}

func TestRegistry_Attach(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"alpha", "bravo"} {
		if err := r.Register(mcpgo.NewTool(name, mcpgo.WithDescription("Test tool.")), noopHandler()); err != nil {
			t.Fatalf("Register %s failed: %v", name, err)
		}
	}

	s := mcpserver.NewMCPServer("test", "1.0.0", mcpserver.WithToolCapabilities(true))
	r.Attach(s)

	tools := listTools(t, s)
	if len(tools) != 2 {
		t.Fatalf("expected 2 attached tools, got %d", len(tools))
	}

	result := callTool(t, s, "alpha", map[string]interface{}{})
	if result.IsError {
		t.Error("expected attached handler to serve calls")
	}
	if text := extractText(t, result.Content[0]); text != "ok" {
		t.Errorf("expected handler text ok, got %q", text)
	}
}
