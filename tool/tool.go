// Package tool implements the capabilities an agent can invoke while it
// reasons: the Tool interface, primitive parameter signatures with argument
// coercion, and the per-agent Registry that resolves and executes calls.
package tool

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/hupe1980/reactmesh/core"
	"github.com/hupe1980/reactmesh/internal/util"
)

// Tool defines the interface for extending agent capabilities with external functions.
//
// Tools are registered with an agent at construction time. The model requests
// a call by name; the registry checks argument names against Parameters,
// coerces every value to its declared type and then invokes Call.
//
// Implementations should be safe for concurrent use.
type Tool interface {
	// Name returns the unique identifier for this tool (snake_case recommended).
	Name() string

	// Description returns a human-readable description shown to the model.
	Description() string

	// Parameters returns the declared parameter signature.
	Parameters() Signature

	// Call executes the tool with coerced arguments.
	Call(toolCtx *core.ToolContext, args map[string]any) (any, error)
}

// Signature maps parameter names to their declared primitive type.
type Signature map[string]ParamType

// Names returns the parameter names in sorted order.
func (s Signature) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Definition is the model facing description of a tool.
type Definition struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Parameters  Signature `json:"parameters"`
}

// String renders the definition as JSON.
func (d Definition) String() string {
	out, err := json.Marshal(d)
	if err != nil {
		return fmt.Sprintf(`{"name": %q}`, d.Name)
	}
	return string(out)
}

// DefinitionOf returns the definition of t.
func DefinitionOf(t Tool) Definition {
	params := t.Parameters()
	if params == nil {
		params = Signature{}
	}
	return Definition{Name: t.Name(), Description: t.Description(), Parameters: params}
}

// ValidationError represents parameter validation errors with detailed information.
type ValidationError = util.ValidationError

// Error codes carried by ToolError.
const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
	CodeExecution  = "EXECUTION_ERROR"
)

// ToolError represents errors that occur while resolving or executing a tool call.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}
