package tool

import (
	"fmt"
	"strings"

	"github.com/hupe1980/reactmesh/core"
)

// Registry resolves tool calls by name. It is built once and never mutated,
// which makes it safe for concurrent use.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry builds a registry from tools. Duplicate names are rejected.
// Parameters of a type Coerce does not know are accepted and passed through
// as decoded.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if t == nil {
			return nil, fmt.Errorf("tool must not be nil")
		}
		name := t.Name()
		if _, exists := r.tools[name]; exists {
			return nil, fmt.Errorf("%w: %s", core.ErrDuplicateTool, name)
		}
		r.tools[name] = t
		r.order = append(r.order, name)
	}
	return r, nil
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.tools[n])
	}
	return out
}

// Definitions returns the model facing definitions in registration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, DefinitionOf(r.tools[n]))
	}
	return out
}

// Invoke resolves name, checks every argument against the declared
// signature, coerces it to the declared type and calls the tool. All failures
// are returned as *ToolError; a panicking tool is reported as an execution
// error.
func (r *Registry) Invoke(tc *core.ToolContext, name string, args map[string]any) (result any, err error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, NewToolError(name, fmt.Sprintf(
			"Function %s does not exist. Call another function or check if you have enough data to provide an answer.", name,
		), CodeNotFound)
	}

	sig := t.Parameters()
	coerced := make(map[string]any, len(args))
	for arg, value := range args {
		typ, declared := sig[arg]
		if !declared {
			return nil, NewToolError(name, fmt.Sprintf(
				"Function %s does not have argument %s. Call it with those arguments: [%s]",
				name, arg, strings.Join(sig.Names(), ", "),
			), CodeValidation)
		}
		v, cerr := Coerce(value, typ)
		if cerr != nil {
			te := NewToolError(name, fmt.Sprintf("Function %s argument %s: %v", name, arg, cerr), CodeValidation)
			te.Details = &ValidationError{Field: arg, Value: value, Message: cerr.Error()}
			return nil, te
		}
		coerced[arg] = v
	}

	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = NewToolError(name, fmt.Sprintf("Function %s failed: %v", name, p), CodeExecution)
		}
	}()

	result, err = t.Call(tc, coerced)
	if err != nil {
		if _, ok := err.(*ToolError); !ok {
			err = NewToolError(name, err.Error(), CodeExecution)
		}
		return nil, err
	}

	return result, nil
}
