package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventKind classifies an audit Event.
type EventKind string

const (
	EventThought      EventKind = "thought"
	EventToolCall     EventKind = "tool_call"
	EventObservation  EventKind = "observation"
	EventAnswer       EventKind = "answer"
	EventForcedAnswer EventKind = "forced_answer"
	EventAgentResult  EventKind = "agent_result"
)

// Event is an immutable audit record produced while agents run. Events never
// influence control flow; they exist for inspection and persistence.
type Event struct {
	ID        string    `json:"id"`
	RunID     string    `json:"run_id"`
	Agent     string    `json:"agent"`
	Kind      EventKind `json:"kind"`
	Step      int       `json:"step"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates an event with a fresh id and a UTC timestamp.
func NewEvent(runID, agent string, kind EventKind, step int, content string) Event {
	return Event{
		ID:        NewID(),
		RunID:     runID,
		Agent:     agent,
		Kind:      kind,
		Step:      step,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// EventSink receives audit events. Implementations must be safe for
// concurrent use.
type EventSink interface {
	Record(ev Event) error
}

// NopSink discards every event.
type NopSink struct{}

// Record implements EventSink.
func (NopSink) Record(Event) error { return nil }

// NewID returns a new random identifier.
func NewID() string { return uuid.NewString() }

type runIDKey struct{}

// WithRunID returns a context carrying the given run id.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunIDFromContext returns the run id stored in ctx, if any.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey{}).(string)
	return id, ok && id != ""
}

// EnsureRunID returns ctx unchanged when it already carries a run id and a
// derived context with a fresh id otherwise.
func EnsureRunID(ctx context.Context) (context.Context, string) {
	if id, ok := RunIDFromContext(ctx); ok {
		return ctx, id
	}
	id := NewID()
	return WithRunID(ctx, id), id
}
