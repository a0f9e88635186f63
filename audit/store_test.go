package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/reactmesh/core"
	"github.com/hupe1980/reactmesh/internal/testutil"
)

func storeFactories(t *testing.T) map[string]func() Store {
	return map[string]func() Store{
		"memory": func() Store { return NewInMemoryStore() },
		"sqlite": func() Store {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "audit.db"))
			require.NoError(t, err)
			return s
		},
	}
}

func TestStores(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			defer s.Close()
			ctx := context.Background()

			events := []core.Event{
				testutil.NewEventBuilder().Run("run-1").Agent("writer").Step(1).Thought("plan").At(ts).Build(),
				testutil.NewEventBuilder().Run("run-2").Agent("solo").Answer("hi").At(ts).Build(),
				testutil.NewEventBuilder().Run("run-1").Agent("writer").Result("draft").At(ts).Build(),
			}
			for _, ev := range events {
				require.NoError(t, s.Record(ev))
			}

			got, err := s.Events(ctx, "run-1")
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, events[0], got[0])
			assert.Equal(t, events[2], got[1])

			none, err := s.Events(ctx, "missing")
			require.NoError(t, err)
			assert.Empty(t, none)

			runs, err := s.Runs(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"run-2", "run-1"}, runs)
		})
	}
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	ev := testutil.NewEventBuilder().Run("run-9").Observation("<observation>\n5\n</observation>").Build()
	require.NoError(t, s.Record(ev))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Events(context.Background(), "run-9")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ev.Content, got[0].Content)
	assert.Equal(t, core.EventObservation, got[0].Kind)
}

func TestSQLiteStoreRejectsDuplicateIDs(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ev := testutil.NewEventBuilder().ID("fixed").Run("r").Build()
	require.NoError(t, s.Record(ev))
	assert.Error(t, s.Record(ev))
}
