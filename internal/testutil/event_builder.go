package testutil

import (
	"time"

	"github.com/hupe1980/reactmesh/core"
)

// EventBuilder provides a fluent helper for constructing events in tests.
// Example:
//
//	ev := NewEventBuilder().Agent("writer").Run("run-1").Answer("done").Build()
//
// Chain only the parts you need; sensible defaults are applied.
type EventBuilder struct {
	id        string
	runID     string
	agent     string
	kind      core.EventKind
	step      int
	content   string
	timestamp time.Time
}

// NewEventBuilder creates a builder with default agent "agent" and kind thought.
func NewEventBuilder() *EventBuilder {
	return &EventBuilder{agent: "agent", kind: core.EventThought}
}

// ID overrides the auto-generated event ID (chainable).
func (b *EventBuilder) ID(id string) *EventBuilder { b.id = id; return b }

// Run sets the run id (chainable).
func (b *EventBuilder) Run(id string) *EventBuilder { b.runID = id; return b }

// Agent sets the emitting agent (chainable).
func (b *EventBuilder) Agent(name string) *EventBuilder { b.agent = name; return b }

// Step sets the loop step (chainable).
func (b *EventBuilder) Step(n int) *EventBuilder { b.step = n; return b }

// At pins the timestamp (chainable).
func (b *EventBuilder) At(ts time.Time) *EventBuilder { b.timestamp = ts; return b }

// Thought marks the event as a thought with the given text (chainable).
func (b *EventBuilder) Thought(text string) *EventBuilder { return b.of(core.EventThought, text) }

// ToolCall marks the event as a tool call (chainable).
func (b *EventBuilder) ToolCall(call string) *EventBuilder { return b.of(core.EventToolCall, call) }

// Observation marks the event as an observation (chainable).
func (b *EventBuilder) Observation(text string) *EventBuilder {
	return b.of(core.EventObservation, text)
}

// Answer marks the event as a final answer (chainable).
func (b *EventBuilder) Answer(text string) *EventBuilder { return b.of(core.EventAnswer, text) }

// Result marks the event as a workflow agent result (chainable).
func (b *EventBuilder) Result(text string) *EventBuilder { return b.of(core.EventAgentResult, text) }

func (b *EventBuilder) of(kind core.EventKind, content string) *EventBuilder {
	b.kind = kind
	b.content = content
	return b
}

// Build finalizes and returns the event.
func (b *EventBuilder) Build() core.Event {
	ev := core.NewEvent(b.runID, b.agent, b.kind, b.step, b.content)
	if b.id != "" {
		ev.ID = b.id
	}
	if !b.timestamp.IsZero() {
		ev.Timestamp = b.timestamp
	}
	return ev
}
