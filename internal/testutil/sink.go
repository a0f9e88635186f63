package testutil

import (
	"sync"

	"github.com/hupe1980/reactmesh/core"
)

// RecordingSink keeps every recorded event in memory.
type RecordingSink struct {
	mu     sync.Mutex
	events []core.Event
	err    error
}

// NewRecordingSink returns an empty sink.
func NewRecordingSink() *RecordingSink { return &RecordingSink{} }

// FailWith makes Record store the event and then return err.
func (s *RecordingSink) FailWith(err error) *RecordingSink {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	return s
}

// Record implements core.EventSink.
func (s *RecordingSink) Record(ev core.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

// Events returns a copy of the recorded events.
func (s *RecordingSink) Events() []core.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Event(nil), s.events...)
}

// Kinds returns the kinds of the recorded events in order.
func (s *RecordingSink) Kinds() []core.EventKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.EventKind, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Kind)
	}
	return out
}

// ByAgent returns the events emitted by agent.
func (s *RecordingSink) ByAgent(agent string) []core.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Event
	for _, ev := range s.events {
		if ev.Agent == agent {
			out = append(out, ev)
		}
	}
	return out
}
