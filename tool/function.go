package tool

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hupe1980/reactmesh/core"
	"github.com/hupe1980/reactmesh/internal/util"
)

// FunctionTool is a generic adapter that exposes a plain Go function as a tool.
//
// Responsibilities:
//   - Holds the declared parameter Signature shown to the model
//   - Invokes the wrapped function with a *core.ToolContext giving access to the
//     caller's context, correlation ids and logging
//   - Normalizes error handling so callers receive *ToolError with consistent codes:
//     EXECUTION_ERROR -> underlying function returned an error (non-ToolError)
//     (custom codes preserved if the function returns *ToolError directly)
//
// Argument names and types are checked by the Registry before Call runs, so
// the function receives values already coerced to bool, int, float64, string
// or time.Time.
//
// A FunctionTool has no internal mutable state after construction and is safe
// for concurrent use by multiple goroutines.
type FunctionTool struct {
	name        string
	description string
	parameters  Signature
	fn          func(toolCtx *core.ToolContext, args map[string]any) (any, error)
}

// NewFunctionTool constructs a FunctionTool from an explicit signature and function.
//
// Example:
//
//	add := tool.NewFunctionTool(
//	  "add",
//	  "Add two integers",
//	  tool.Signature{"a": tool.TypeInt, "b": tool.TypeInt},
//	  func(tc *core.ToolContext, args map[string]any) (any, error) {
//	    return args["a"].(int) + args["b"].(int), nil
//	  },
//	)
func NewFunctionTool(
	name, description string,
	parameters Signature,
	fn func(toolCtx *core.ToolContext, args map[string]any) (any, error),
) *FunctionTool {
	if parameters == nil {
		parameters = Signature{}
	}
	return &FunctionTool{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
	}
}

// NewFunctionToolFromStruct derives the signature from a struct using reflection.
// Field names follow the json tag; time.Time fields are declared as dates.
//
// Example:
//
//	type SumArgs struct {
//	  A int `json:"a"`
//	  B int `json:"b"`
//	}
//
//	sumTool, err := tool.NewFunctionToolFromStruct("add", "Add two integers", SumArgs{}, fn)
func NewFunctionToolFromStruct(
	name, description string,
	structType any,
	fn func(toolCtx *core.ToolContext, args map[string]any) (any, error),
) (*FunctionTool, error) {
	sig, err := signatureOf(structType)
	if err != nil {
		return nil, fmt.Errorf("tool %s: %w", name, err)
	}
	return NewFunctionTool(name, description, sig, fn), nil
}

// NewTypedTool is NewFunctionToolFromStruct with the coerced arguments decoded
// into a value of T before fn runs.
func NewTypedTool[T any](
	name, description string,
	fn func(toolCtx *core.ToolContext, args T) (any, error),
) (*FunctionTool, error) {
	var zero T
	return NewFunctionToolFromStruct(name, description, zero, func(tc *core.ToolContext, args map[string]any) (any, error) {
		raw, err := json.Marshal(args)
		if err != nil {
			return nil, err
		}
		var typed T
		if err := json.Unmarshal(raw, &typed); err != nil {
			return nil, fmt.Errorf("decode arguments: %w", err)
		}
		return fn(tc, typed)
	})
}

func signatureOf(structType any) (Signature, error) {
	raw, err := util.CreateSignature(structType)
	if err != nil {
		return nil, err
	}
	sig := make(Signature, len(raw))
	for k, v := range raw {
		sig[k] = ParamType(v)
	}
	return sig, nil
}

// Name returns the unique tool name used in tool calls and routing.
func (t *FunctionTool) Name() string { return t.name }

// Description returns the short natural language description exposed to models.
func (t *FunctionTool) Description() string { return t.description }

// Parameters returns the declared parameter signature.
func (t *FunctionTool) Parameters() Signature { return t.parameters }

// Call invokes the underlying function. Errors are wrapped (or passed
// through) as *ToolError for uniform downstream handling.
//
// Logging Fields:
//
//	tool: tool name
//	call_id: tool call identifier
//	duration_ms: execution time in milliseconds
func (t *FunctionTool) Call(toolCtx *core.ToolContext, args map[string]any) (any, error) {
	logger := toolCtx.Logger()
	start := time.Now()

	logger.Debug("tool.call.start", "tool", t.name, "call_id", toolCtx.CallID())

	result, err := t.fn(toolCtx, args)
	if err != nil {
		if toolErr, ok := err.(*ToolError); ok { // Already a ToolError -> just log and forward
			logger.Error("tool.call.error", "tool", t.name, "error", toolErr.Message)

			return nil, toolErr
		}

		logger.Error("tool.call.error", "tool", t.name, "error", err.Error())

		return nil, &ToolError{
			Tool:    t.name,
			Message: err.Error(),
			Code:    CodeExecution,
		}
	}

	logger.Info("tool.call.success", "tool", t.name, "duration_ms", time.Since(start).Milliseconds())

	return result, nil
}
