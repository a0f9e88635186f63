package audit

import (
	"context"
	"sync"

	"github.com/hupe1980/reactmesh/core"
)

// InMemoryStore is a volatile Store. It is safe for concurrent access.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[string][]core.Event
	runs   []string
}

// NewInMemoryStore constructs an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[string][]core.Event)}
}

// Record implements core.EventSink.
func (s *InMemoryStore) Record(ev core.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[ev.RunID]; !ok {
		s.runs = append(s.runs, ev.RunID)
	}
	s.events[ev.RunID] = append(s.events[ev.RunID], ev)
	return nil
}

// Events returns a copy of the events recorded for runID.
func (s *InMemoryStore) Events(_ context.Context, runID string) ([]core.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Event(nil), s.events[runID]...), nil
}

// Runs returns the run ids, most recent first.
func (s *InMemoryStore) Runs(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.runs))
	for i := len(s.runs) - 1; i >= 0; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}

// Close is a no-op.
func (s *InMemoryStore) Close() error { return nil }
