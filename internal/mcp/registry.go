package mcp

import (
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registeredTool pairs a tool definition with its handler.
type registeredTool struct {
	tool    mcp.Tool
	handler server.ToolHandlerFunc
}

// Registry holds the tool set exposed by the server. Registration happens
// once at startup before any transport accepts requests, so access is not
// locked; Seal marks the set complete.
type Registry struct {
	tools  map[string]registeredTool
	order  []string
	sealed bool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]registeredTool)}
}

// Register adds a tool under its name. Names must be unique.
func (r *Registry) Register(tool mcp.Tool, handler server.ToolHandlerFunc) error {
	if r.sealed {
		return errors.New("registry is sealed")
	}
	if tool.Name == "" {
		return errors.New("tool has empty name")
	}
	if handler == nil {
		return fmt.Errorf("tool %q has nil handler", tool.Name)
	}
	if _, exists := r.tools[tool.Name]; exists {
		return &DuplicateToolError{Name: tool.Name}
	}
	r.tools[tool.Name] = registeredTool{tool: tool, handler: handler}
	r.order = append(r.order, tool.Name)
	return nil
}

// Resolve returns the tool and handler registered under name.
func (r *Registry) Resolve(name string) (mcp.Tool, server.ToolHandlerFunc, error) {
	rt, ok := r.tools[name]
	if !ok {
		return mcp.Tool{}, nil, &UnknownToolError{Name: name}
	}
	return rt.tool, rt.handler, nil
}

// Seal freezes the registry against further registration.
func (r *Registry) Seal() {
	r.sealed = true
}

// Sealed reports whether the registry has been sealed.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Names returns the tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.order)
}

// Attach adds every registered tool to the MCP server in registration order.
func (r *Registry) Attach(s *server.MCPServer) {
	for _, name := range r.order {
		rt := r.tools[name]
		s.AddTool(rt.tool, rt.handler)
	}
}
