package mcp

import "fmt"

// DuplicateToolError indicates a second registration under a name that is
// already taken. Registration happens once at startup, so this is fatal.
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool %q already registered", e.Name)
}

// UnknownToolError indicates a lookup for a tool name that was never registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

// MissingParameterError indicates a required argument was absent from a call.
type MissingParameterError struct {
	Tool  string
	Param string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s: required parameter %q is missing", e.Tool, e.Param)
}

// InvalidParameterTypeError indicates an argument arrived with a JSON type
// that does not match the declared parameter type.
type InvalidParameterTypeError struct {
	Tool  string
	Param string
	Want  string
}

func (e *InvalidParameterTypeError) Error() string {
	return fmt.Sprintf("%s: parameter %q must be a %s", e.Tool, e.Param, e.Want)
}

// UnknownParameterError indicates a caller sent an argument the tool does not declare.
type UnknownParameterError struct {
	Tool  string
	Param string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("%s: unknown parameter %q", e.Tool, e.Param)
}
