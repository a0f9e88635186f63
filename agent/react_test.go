package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/reactmesh/core"
	"github.com/hupe1980/reactmesh/internal/testutil"
	"github.com/hupe1980/reactmesh/model"
	"github.com/hupe1980/reactmesh/tool"
)

func addTool(calls *int) tool.Tool {
	return tool.NewFunctionTool("add", "Add two integers",
		tool.Signature{"a": tool.TypeInt, "b": tool.TypeInt},
		func(_ *core.ToolContext, args map[string]any) (any, error) {
			if calls != nil {
				*calls++
			}
			return args["a"].(int) + args["b"].(int), nil
		})
}

func TestNewReactAgent_NilModel(t *testing.T) {
	_, err := NewReactAgent(nil, nil)
	assert.ErrorIs(t, err, core.ErrNilModel)
}

func TestNewReactAgent_DuplicateTool(t *testing.T) {
	_, err := NewReactAgent(model.NewMockModel(), []tool.Tool{addTool(nil), addTool(nil)})
	assert.ErrorIs(t, err, core.ErrDuplicateTool)
}

func TestReactAgent_Defaults(t *testing.T) {
	a, err := NewReactAgent(model.NewMockModel(), nil)
	require.NoError(t, err)
	assert.Equal(t, "react", a.Name())
	assert.Equal(t, 10, a.MaxSteps())
	assert.Equal(t, 0, a.Tools().Len())
}

func TestReactAgent_ZeroToolsSingleCall(t *testing.T) {
	llm := new(testutil.MockModel)
	llm.On("Generate", mock.Anything, mock.Anything).Return("<answer>ok</answer>", nil).Once()

	sink := testutil.NewRecordingSink()
	a, err := NewReactAgent(llm, nil, func(o *Options) { o.Sink = sink })
	require.NoError(t, err)

	answer, err := a.Generate(context.Background(), "Summarize X")
	require.NoError(t, err)
	assert.Equal(t, "ok", answer)

	llm.AssertNumberOfCalls(t, "Generate", 1)
	msgs := llm.Calls[0].Arguments.Get(1).([]core.Message)
	require.Len(t, msgs, 3)
	assert.Equal(t, core.RoleSystem, msgs[0].Role)
	assert.Equal(t, "<question>Summarize X</question>", msgs[1].Content)
	assert.Equal(t, ForcedAnswerInstruction, msgs[2].Content)
	assert.Equal(t, []core.EventKind{core.EventForcedAnswer}, sink.Kinds())
}

func TestReactAgent_ToolCallWithCoercion(t *testing.T) {
	llm := model.NewMockModel(
		`<tool_call>{"name": "add", "arguments": {"a": "2", "b": "3"}}</tool_call>`,
		`<answer>5</answer>`,
	)
	sink := testutil.NewRecordingSink()

	a, err := NewReactAgent(llm, []tool.Tool{addTool(nil)}, func(o *Options) { o.Sink = sink })
	require.NoError(t, err)

	answer, err := a.Generate(context.Background(), "What is 2+3?")
	require.NoError(t, err)
	assert.Equal(t, "5", answer)

	calls := llm.Calls()
	require.Len(t, calls, 2)
	require.Len(t, calls[1], 3)
	assert.Equal(t, core.RoleUser, calls[1][2].Role)
	assert.Equal(t, "<observation>\n5\n</observation>", calls[1][2].Content)

	assert.Equal(t, []core.EventKind{core.EventToolCall, core.EventObservation, core.EventAnswer}, sink.Kinds())
}

func TestReactAgent_SystemPromptListsTools(t *testing.T) {
	a, err := NewReactAgent(model.NewMockModel(), []tool.Tool{addTool(nil)},
		func(o *Options) { o.Backstory = NewInstructionFromText("You are a calculator.") })
	require.NoError(t, err)

	prompt, err := a.SystemPrompt(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(prompt, "You are a calculator.\n"))
	assert.Contains(t, prompt, "<tools>\n")
	assert.Contains(t, prompt, `"name":"add"`)
	assert.Contains(t, prompt, "get_current_temperature")
}

func TestReactAgent_BatchedCallsJoinedInOrder(t *testing.T) {
	llm := model.NewMockModel(
		`<tool_call>[{"name": "add", "arguments": {"a": 1, "b": 1}}, {"name": "add", "arguments": {"a": 2, "b": 2}}]</tool_call>`,
		`<answer>done</answer>`,
	)
	a, err := NewReactAgent(llm, []tool.Tool{addTool(nil)})
	require.NoError(t, err)

	_, err = a.Generate(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "<observation>\n2\n4\n</observation>", llm.Calls()[1][2].Content)
}

func TestReactAgent_AnswerWinsAfterTools(t *testing.T) {
	executed := 0
	llm := model.NewMockModel(
		"<tool_call>{\"name\": \"add\", \"arguments\": {\"a\": 1, \"b\": 2}}</tool_call>\n<answer>first</answer><answer>final</answer>",
	)
	a, err := NewReactAgent(llm, []tool.Tool{addTool(&executed)})
	require.NoError(t, err)

	answer, err := a.Generate(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "final", answer)
	assert.Equal(t, 1, executed)
	assert.Equal(t, 1, llm.CallCount())
}

func TestReactAgent_ThoughtAppendedAsAssistant(t *testing.T) {
	llm := model.NewMockModel("<thought>plan the work</thought>", "<answer>x</answer>")
	a, err := NewReactAgent(llm, []tool.Tool{addTool(nil)})
	require.NoError(t, err)

	answer, err := a.Generate(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "x", answer)

	second := llm.Calls()[1]
	require.Len(t, second, 3)
	assert.Equal(t, core.RoleAssistant, second[2].Role)
	assert.Equal(t, "<thought>\nplan the work\n</thought>", second[2].Content)
}

func TestReactAgent_ForcedAnswerFallback(t *testing.T) {
	llm := model.NewMockModel("<thought>a</thought>", "nothing useful", "plain final text")
	a, err := NewReactAgent(llm, []tool.Tool{addTool(nil)}, func(o *Options) { o.MaxSteps = 2 })
	require.NoError(t, err)

	answer, err := a.Generate(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "plain final text", answer)

	calls := llm.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, ForcedAnswerInstruction, testutil.LastUserMessage(calls[2]))
}

func TestReactAgent_RunOverridesStepLimit(t *testing.T) {
	llm := model.NewMockModel().WithFallback("<thought>again</thought>")
	a, err := NewReactAgent(llm, []tool.Tool{addTool(nil)})
	require.NoError(t, err)

	_, err = a.Run(context.Background(), "q", 3)
	require.NoError(t, err)
	assert.Equal(t, 4, llm.CallCount())
}

func TestReactAgent_ToolFailuresBecomeObservations(t *testing.T) {
	failing := tool.NewFunctionTool("fail", "Always fails", nil,
		func(*core.ToolContext, map[string]any) (any, error) { return nil, errors.New("boom") })

	tests := []struct {
		name     string
		call     string
		contains string
	}{
		{"unknown tool", `{"name": "nope", "arguments": {}}`, "Function nope does not exist."},
		{"undeclared argument", `{"name": "add", "arguments": {"a": 1, "c": 2}}`, "Function add does not have argument c. Call it with those arguments: [a, b]"},
		{"coercion failure", `{"name": "add", "arguments": {"a": "two", "b": 2}}`, "Function add argument a:"},
		{"tool error", `{"name": "fail", "arguments": {}}`, "boom"},
		{"garbage", `complete garbage`, "Invalid function call"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := model.NewMockModel("<tool_call>"+tt.call+"</tool_call>", "<answer>recovered</answer>")
			a, err := NewReactAgent(llm, []tool.Tool{addTool(nil), failing})
			require.NoError(t, err)

			answer, err := a.Generate(context.Background(), "q")
			require.NoError(t, err)
			assert.Equal(t, "recovered", answer)

			obs := llm.Calls()[1][2].Content
			assert.True(t, strings.HasPrefix(obs, "<observation>\n"))
			assert.Contains(t, obs, tt.contains)
		})
	}
}

func TestReactAgent_EmptyToolCallBlockIsIgnored(t *testing.T) {
	llm := model.NewMockModel("<tool_call>  </tool_call>", "<answer>ok</answer>")
	sink := testutil.NewRecordingSink()
	a, err := NewReactAgent(llm, []tool.Tool{addTool(nil)}, func(o *Options) { o.Sink = sink })
	require.NoError(t, err)

	_, err = a.Generate(context.Background(), "q")
	require.NoError(t, err)
	assert.Len(t, llm.Calls()[1], 2)
	assert.Equal(t, []core.EventKind{core.EventAnswer}, sink.Kinds())
}

func TestReactAgent_HistoryTailBounded(t *testing.T) {
	llm := model.NewMockModel().WithFallback("<thought>loop</thought>")
	a, err := NewReactAgent(llm, []tool.Tool{addTool(nil)}, func(o *Options) {
		o.MaxSteps = 5
		o.HistoryTail = 2
	})
	require.NoError(t, err)

	_, err = a.Generate(context.Background(), "q")
	require.NoError(t, err)

	for _, msgs := range llm.Calls() {
		assert.LessOrEqual(t, len(msgs), 4)
		assert.Equal(t, core.RoleSystem, msgs[0].Role)
		assert.Equal(t, "<question>q</question>", msgs[1].Content)
	}
}

func TestReactAgent_TransportErrorPropagates(t *testing.T) {
	transportErr := errors.New("connection reset")
	llm := model.NewMockModel().FailOn(0, transportErr)
	a, err := NewReactAgent(llm, []tool.Tool{addTool(nil)})
	require.NoError(t, err)

	_, err = a.Generate(context.Background(), "q")
	assert.ErrorIs(t, err, transportErr)
}

func TestReactAgent_SinkFailureDoesNotAbort(t *testing.T) {
	sink := testutil.NewRecordingSink().FailWith(errors.New("disk full"))
	a, err := NewReactAgent(model.NewMockModel("<answer>ok</answer>"), nil, func(o *Options) { o.Sink = sink })
	require.NoError(t, err)

	answer, err := a.Generate(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "ok", answer)
}

func TestReactAgent_EventsCarryRunID(t *testing.T) {
	sink := testutil.NewRecordingSink()
	a, err := NewReactAgent(model.NewMockModel("<answer>ok</answer>"), nil, func(o *Options) {
		o.Name = "solo"
		o.Sink = sink
	})
	require.NoError(t, err)

	_, err = a.Generate(core.WithRunID(context.Background(), "run-42"), "q")
	require.NoError(t, err)

	events := sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "run-42", events[0].RunID)
	assert.Equal(t, "solo", events[0].Agent)
}

func TestFormatResult(t *testing.T) {
	assert.Equal(t, "", FormatResult(nil))
	assert.Equal(t, "text", FormatResult("text"))
	assert.Equal(t, "5", FormatResult(5))
	assert.Equal(t, "2.5", FormatResult(2.5))
	assert.Equal(t, "true", FormatResult(true))
	assert.Equal(t, `{"temperature":15,"unit":"celsius"}`, FormatResult(map[string]any{"unit": "celsius", "temperature": 15}))
}
