package animals

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"animal-finder-api-server/internal/database"
	"animal-finder-api-server/internal/models"

	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *database.MemoryStore) {
	t.Helper()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := database.NewMemoryStore(database.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, FilterCompiler{DefaultLimit: 50, MaxLimit: 100}, logger), store
}

// addAll inserts docs oldest first and returns their ids in the same order.
func addAll(t *testing.T, store database.Store, docs ...models.Animal) []string {
	t.Helper()
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		id, err := store.Add(context.Background(), d)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func pageIDs(p Page) []string {
	out := make([]string, 0, len(p.Animals))
	for _, a := range p.Animals {
		out = append(out, a.ID())
	}
	return out
}
