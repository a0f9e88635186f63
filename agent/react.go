package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/reactmesh/core"
	"github.com/hupe1980/reactmesh/logging"
	"github.com/hupe1980/reactmesh/model"
	"github.com/hupe1980/reactmesh/protocol"
	"github.com/hupe1980/reactmesh/tool"
)

// Options configures a ReactAgent.
type Options struct {
	// Name identifies the agent in logs, events and tool contexts.
	Name string
	// Backstory opens the system prompt.
	Backstory Instruction
	// MaxSteps bounds the thought / tool call iterations of Generate.
	MaxSteps int
	// HistoryHead is the number of protected leading messages.
	HistoryHead int
	// HistoryTail bounds the number of messages after the head.
	HistoryTail int
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
	// Sink receives audit events (defaults to discarding them).
	Sink core.EventSink
}

// DefaultOptions returns the defaults used by NewReactAgent.
func DefaultOptions() Options {
	return Options{
		Name:        "react",
		MaxSteps:    10,
		HistoryHead: 2,
		HistoryTail: 100,
		Logger:      logging.NoOpLogger{},
		Sink:        core.NopSink{},
	}
}

// ReactAgent runs the thought / act / observe loop for a single query.
// It holds no per-run state and may be used by several goroutines at once.
type ReactAgent struct {
	llm      model.Model
	registry *tool.Registry
	opts     Options
}

// NewReactAgent creates an agent bound to llm and the given tools.
func NewReactAgent(llm model.Model, tools []tool.Tool, optFns ...func(o *Options)) (*ReactAgent, error) {
	if llm == nil {
		return nil, core.ErrNilModel
	}

	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Sink == nil {
		opts.Sink = core.NopSink{}
	}

	registry, err := tool.NewRegistry(tools...)
	if err != nil {
		return nil, fmt.Errorf("agent %s: %w", opts.Name, err)
	}

	return &ReactAgent{llm: llm, registry: registry, opts: opts}, nil
}

// Name returns the agent name.
func (a *ReactAgent) Name() string { return a.opts.Name }

// Tools returns the agent's tool registry.
func (a *ReactAgent) Tools() *tool.Registry { return a.registry }

// MaxSteps returns the configured step limit.
func (a *ReactAgent) MaxSteps() int { return a.opts.MaxSteps }

// SystemPrompt renders the system message of a run.
func (a *ReactAgent) SystemPrompt(ctx context.Context) (string, error) {
	backstory, err := a.opts.Backstory.Resolve(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve backstory: %w", err)
	}
	return renderSystemPrompt(backstory, a.registry.Definitions())
}

// Generate answers query using the configured step limit.
func (a *ReactAgent) Generate(ctx context.Context, query string) (string, error) {
	return a.Run(ctx, query, a.opts.MaxSteps)
}

// Run answers query with at most maxSteps loop iterations. The loop is only
// entered when the agent owns at least one tool; otherwise, and whenever the
// limit is reached without an answer, a single forced final turn is issued
// whose reply is accepted with or without answer tags.
func (a *ReactAgent) Run(ctx context.Context, query string, maxSteps int) (string, error) {
	start := time.Now()
	logger := a.opts.Logger

	system, err := a.SystemPrompt(ctx)
	if err != nil {
		return "", err
	}

	history := core.NewHistory(a.opts.HistoryHead, a.opts.HistoryTail,
		core.NewSystemMessage(system),
		core.NewUserMessage(protocol.Question.Wrap(query)),
	)

	logger.Info("agent.run.start", "agent", a.opts.Name, "max_steps", maxSteps, "tools", a.registry.Len())

	step := 0
	for a.registry.Len() > 0 && step < maxSteps {
		step++
		logger.Debug("agent.step.start", "agent", a.opts.Name, "step", step)

		response, err := a.generate(ctx, history)
		if err != nil {
			return "", a.fail(step, start, err)
		}

		acted := false
		if blocks := protocol.Extract(response, protocol.ToolCall, false); len(blocks) > 0 {
			if calls := protocol.ParseToolCallBlocks(blocks); len(calls) > 0 {
				acted = true
				results := a.executeCalls(ctx, step, calls)
				observation := protocol.Observation.Block(strings.Join(results, "\n"))
				history.Append(core.NewUserMessage(observation))
				a.record(ctx, core.EventObservation, step, observation)
			}
		}

		if answer, ok := protocol.Last(response, protocol.Answer, false); ok {
			a.record(ctx, core.EventAnswer, step, answer)
			a.complete(step, start)
			return answer, nil
		}

		if thoughts := protocol.Extract(response, protocol.Thought, false); len(thoughts) > 0 {
			thought := strings.Join(thoughts, "\n")
			history.Append(core.NewAssistantMessage(protocol.Thought.Block(thought)))
			a.record(ctx, core.EventThought, step, thought)
			continue
		}

		if !acted {
			logger.Warn("agent.step.wasted", "agent", a.opts.Name, "step", step)
		}
	}

	logger.Debug("agent.step.forced_answer", "agent", a.opts.Name, "steps", step)

	history.Append(core.NewUserMessage(ForcedAnswerInstruction))

	response, err := a.generate(ctx, history)
	if err != nil {
		return "", a.fail(step, start, err)
	}

	answer, _ := protocol.Last(response, protocol.Answer, true)
	a.record(ctx, core.EventForcedAnswer, step, answer)
	a.complete(step, start)

	return answer, nil
}

func (a *ReactAgent) generate(ctx context.Context, history *core.History) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	out, err := a.llm.Generate(ctx, history.Messages())
	if err != nil {
		a.opts.Logger.Error("llm.call.error", "agent", a.opts.Name, "model", a.llm.Info().Name, "error", err.Error())
		return "", fmt.Errorf("agent %s: generate: %w", a.opts.Name, err)
	}

	a.opts.Logger.Debug("llm.call.success", "agent", a.opts.Name, "model", a.llm.Info().Name,
		"duration_ms", time.Since(start).Milliseconds(), "chars", len(out))

	return out, nil
}

// executeCalls runs every call in order and returns one textual result per
// call. Failures are rendered as text.
func (a *ReactAgent) executeCalls(ctx context.Context, step int, calls []protocol.Call) []string {
	results := make([]string, 0, len(calls))
	for _, call := range calls {
		a.record(ctx, core.EventToolCall, step, call.String())

		if call.IsError() {
			a.opts.Logger.Warn("tool.call.invalid", "agent", a.opts.Name, "error", call.Arguments["error"])
			results = append(results, invalidCallMessage(call))
			continue
		}

		tc := core.NewToolContext(ctx, a.opts.Name, core.NewID(), a.opts.Logger)
		res, err := a.registry.Invoke(tc, call.Name, call.Arguments)
		if err != nil {
			a.opts.Logger.Warn("tool.call.failed", "agent", a.opts.Name, "tool", call.Name, "error", err.Error())
			results = append(results, errorText(err))
			continue
		}

		results = append(results, FormatResult(res))
	}
	return results
}

func invalidCallMessage(call protocol.Call) string {
	return fmt.Sprintf(
		"Invalid function call: %v. Return each function call as a JSON object like "+
			`{"name": <function-name>, "arguments": <arguments-dict>} within %s XML tags.`,
		call.Arguments["error"], protocol.ToolCall.Open()+protocol.ToolCall.Close(),
	)
}

func errorText(err error) string {
	var te *tool.ToolError
	if errors.As(err, &te) {
		return te.Message
	}
	return err.Error()
}

// FormatResult renders a tool result as observation text.
func FormatResult(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(x)
	}
	if out, err := json.Marshal(v); err == nil {
		return string(out)
	}
	return fmt.Sprint(v)
}

func (a *ReactAgent) record(ctx context.Context, kind core.EventKind, step int, content string) {
	runID, _ := core.RunIDFromContext(ctx)
	if err := a.opts.Sink.Record(core.NewEvent(runID, a.opts.Name, kind, step, content)); err != nil {
		a.opts.Logger.Warn("agent.event.record_failed", "agent", a.opts.Name, "kind", string(kind), "error", err.Error())
	}
}

func (a *ReactAgent) complete(steps int, start time.Time) {
	a.opts.Logger.Info("agent.run.complete", "agent", a.opts.Name, "steps", steps,
		"duration_ms", time.Since(start).Milliseconds())
}

func (a *ReactAgent) fail(steps int, start time.Time, err error) error {
	a.opts.Logger.Error("agent.run.error", "agent", a.opts.Name, "steps", steps,
		"duration_ms", time.Since(start).Milliseconds(), "error", err.Error())
	return err
}
