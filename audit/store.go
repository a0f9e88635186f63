package audit

import (
	"context"

	"github.com/hupe1980/reactmesh/core"
)

// Store is an EventSink that can be queried.
type Store interface {
	core.EventSink
	// Events returns the events of runID in recording order.
	Events(ctx context.Context, runID string) ([]core.Event, error)
	// Runs returns the known run ids, most recent first.
	Runs(ctx context.Context) ([]string, error)
	Close() error
}

var (
	_ Store = (*InMemoryStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)
