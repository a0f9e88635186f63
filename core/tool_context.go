package core

import (
	"context"

	"github.com/hupe1980/reactmesh/logging"
)

// ToolContext is the scope handed to a tool implementation for a single call.
// It carries the caller's context together with correlation identifiers and
// a logger that tags every entry with them.
type ToolContext struct {
	ctx       context.Context
	runID     string
	agentName string
	callID    string

	*callLogger
}

// NewToolContext constructs a tool context for one call issued by agentName.
func NewToolContext(ctx context.Context, agentName, callID string, logger logging.Logger) *ToolContext {
	if ctx == nil {
		ctx = context.Background()
	}
	runID, _ := RunIDFromContext(ctx)
	return &ToolContext{
		ctx:        ctx,
		runID:      runID,
		agentName:  agentName,
		callID:     callID,
		callLogger: newCallLogger(logger, runID, agentName, callID),
	}
}

// Context returns the context associated with the tool invocation.
func (tc *ToolContext) Context() context.Context { return tc.ctx }

// RunID returns the workflow run id, empty outside of a workflow run.
func (tc *ToolContext) RunID() string { return tc.runID }

// AgentName returns the name of the agent issuing the call.
func (tc *ToolContext) AgentName() string { return tc.agentName }

// CallID returns the identifier of this tool call.
func (tc *ToolContext) CallID() string { return tc.callID }
