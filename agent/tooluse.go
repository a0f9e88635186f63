package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/reactmesh/core"
	"github.com/hupe1980/reactmesh/model"
	"github.com/hupe1980/reactmesh/protocol"
	"github.com/hupe1980/reactmesh/tool"
)

// ToolUseAgent answers a query with a single round of tool calls followed by
// one final generation. It has no thought loop and no step limit.
type ToolUseAgent struct {
	base *ReactAgent
}

// NewToolUseAgent creates a one-round tool calling agent. Only the first
// message of its history (the system prompt) is protected.
func NewToolUseAgent(llm model.Model, tools []tool.Tool, optFns ...func(o *Options)) (*ToolUseAgent, error) {
	fns := append([]func(o *Options){func(o *Options) {
		o.Name = "tool_use"
		o.HistoryHead = 1
	}}, optFns...)

	base, err := NewReactAgent(llm, tools, fns...)
	if err != nil {
		return nil, err
	}
	return &ToolUseAgent{base: base}, nil
}

// Name returns the agent name.
func (a *ToolUseAgent) Name() string { return a.base.Name() }

// Tools returns the agent's tool registry.
func (a *ToolUseAgent) Tools() *tool.Registry { return a.base.Tools() }

// SystemPrompt renders the system message of a run.
func (a *ToolUseAgent) SystemPrompt(ctx context.Context) (string, error) {
	backstory, err := a.base.opts.Backstory.Resolve(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve backstory: %w", err)
	}
	return renderToolUsePrompt(backstory, a.base.registry.Definitions())
}

// Generate sends query, executes every tool call of the first reply and
// returns the raw text of a second generation that sees the results.
func (a *ToolUseAgent) Generate(ctx context.Context, query string) (string, error) {
	start := time.Now()
	opts := a.base.opts

	system, err := a.SystemPrompt(ctx)
	if err != nil {
		return "", err
	}

	history := core.NewHistory(opts.HistoryHead, opts.HistoryTail,
		core.NewSystemMessage(system),
		core.NewUserMessage(query),
	)

	opts.Logger.Info("agent.run.start", "agent", opts.Name, "tools", a.base.registry.Len())

	response, err := a.base.generate(ctx, history)
	if err != nil {
		return "", a.base.fail(1, start, err)
	}

	blocks := protocol.Extract(response, protocol.ToolCall, false)
	if calls := protocol.ParseToolCallBlocks(blocks); len(calls) > 0 {
		results := a.base.executeCalls(ctx, 1, calls)
		lines := make([]string, len(calls))
		for i, call := range calls {
			lines[i] = call.String() + ": " + results[i]
		}
		content := protocol.ToolResults.Block(strings.Join(lines, "\n"))
		history.Append(core.NewAssistantMessage(content))
		a.base.record(ctx, core.EventObservation, 1, content)
	}

	final, err := a.base.generate(ctx, history)
	if err != nil {
		return "", a.base.fail(2, start, err)
	}

	a.base.record(ctx, core.EventAnswer, 2, final)
	a.base.complete(2, start)

	return final, nil
}
