package database

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"animal-finder-api-server/internal/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a clock that advances one minute per call.
func stepClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func seed(t *testing.T, s *MemoryStore, docs ...models.Animal) []string {
	t.Helper()
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		id, err := s.Add(context.Background(), d)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestMemoryStoreAddAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(WithClock(stepClock()))

	id, err := s.Add(ctx, models.Animal{"id": "client-id", "species": "gato"})
	require.NoError(t, err)
	assert.NotEqual(t, "client-id", id)

	doc, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID())
	assert.Equal(t, "gato", doc["species"])
	_, ok := doc.CreatedAt()
	assert.True(t, ok)

	// Returned documents are copies.
	doc["species"] = "cachorro"
	again, _ := s.Get(ctx, id)
	assert.Equal(t, "gato", again["species"])

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreMergeUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(WithClock(stepClock()))
	ids := seed(t, s, models.Animal{"species": "gato", "color": "preto"})

	before, _ := s.Get(ctx, ids[0])
	require.NoError(t, s.MergeUpdate(ctx, ids[0], models.Animal{"color": "branco", "createdAt": time.Now()}))

	after, _ := s.Get(ctx, ids[0])
	assert.Equal(t, "gato", after["species"])
	assert.Equal(t, "branco", after["color"])
	assert.Equal(t, before["createdAt"], after["createdAt"])

	assert.ErrorIs(t, s.MergeUpdate(ctx, "missing", models.Animal{"color": "x"}), ErrNotFound)
}

func TestMemoryStoreQueryOrderingAndCursor(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(WithClock(stepClock()))
	ids := seed(t, s,
		models.Animal{"species": "gato", "foundOwner": false},
		models.Animal{"species": "cachorro", "foundOwner": false},
		models.Animal{"species": "gato", "foundOwner": true},
		models.Animal{"species": "gato", "foundOwner": false},
	)

	all, err := s.Query(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{ids[3], ids[2], ids[1], ids[0]}, idsOf(all))

	preds := []Predicate{
		{Field: "species", Op: OpEqual, Value: "gato"},
		{Field: "foundOwner", Op: OpEqual, Value: false},
	}
	page, err := s.Query(ctx, Query{Predicates: preds, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{ids[3]}, idsOf(page))

	last, _ := s.Get(ctx, ids[3])
	createdAt, _ := last.CreatedAt()
	next, err := s.Query(ctx, Query{Predicates: preds, Limit: 1, After: &Cursor{ID: ids[3], CreatedAt: createdAt}})
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0]}, idsOf(next))

	in, err := s.Query(ctx, Query{Predicates: []Predicate{{Field: "species", Op: OpIn, Value: []string{"cachorro", "papagaio"}}}})
	require.NoError(t, err)
	assert.Equal(t, []string{ids[1]}, idsOf(in))
}

func TestMemoryStoreTieBreakOnID(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(WithClock(func() time.Time { return fixed }))
	seed(t, s, models.Animal{"n": 1}, models.Animal{"n": 2}, models.Animal{"n": 3})

	all, err := s.Query(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Greater(t, all[0].ID(), all[1].ID())
	assert.Greater(t, all[1].ID(), all[2].ID())

	rest, err := s.Query(ctx, Query{After: &Cursor{ID: all[0].ID(), CreatedAt: fixed}})
	require.NoError(t, err)
	assert.Equal(t, idsOf(all[1:]), idsOf(rest))
}

func TestMemoryStoreMissingFieldNeverMatches(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(WithClock(stepClock()))
	seed(t, s, models.Animal{"species": "gato"})

	docs, err := s.Query(ctx, Query{Predicates: []Predicate{{Field: "foundOwner", Op: OpEqual, Value: false}}})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryStoreCommitIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(WithClock(stepClock()))
	ids := seed(t, s, models.Animal{"whereItIs": "A"}, models.Animal{"whereItIs": "B"})

	err := s.Commit(ctx, Batch{Updates: []Update{
		{ID: ids[0], Fields: map[string]interface{}{"whereItIs": "C"}},
		{ID: "missing", Fields: map[string]interface{}{"whereItIs": "C"}},
	}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	doc, _ := s.Get(ctx, ids[0])
	assert.Equal(t, "A", doc["whereItIs"], "failed batch must not apply any write")

	require.NoError(t, s.Commit(ctx, Batch{Updates: []Update{
		{ID: ids[0], Fields: map[string]interface{}{"whereItIs": "C"}},
		{ID: ids[1], Fields: map[string]interface{}{"whereItIs": "C"}},
	}}))
	for _, id := range ids {
		doc, _ := s.Get(ctx, id)
		assert.Equal(t, "C", doc["whereItIs"])
	}

	require.Error(t, s.Commit(ctx, Batch{Deletes: []string{ids[0], "missing"}}))
	count, _ := s.Count(ctx)
	assert.EqualValues(t, 2, count)

	require.NoError(t, s.Commit(ctx, Batch{Deletes: ids}))
	count, _ = s.Count(ctx)
	assert.EqualValues(t, 0, count)
}

func TestSeedAnimals(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewMemoryStore(WithClock(stepClock()))

	require.NoError(t, SeedAnimals(ctx, s, logger))
	count, _ := s.Count(ctx)
	assert.EqualValues(t, len(demoAnimals), count)

	reunited, err := s.Query(ctx, Query{Predicates: []Predicate{{Field: "foundOwner", Op: OpEqual, Value: true}}})
	require.NoError(t, err)
	assert.Len(t, reunited, 1)

	// A second run leaves a populated collection alone.
	require.NoError(t, SeedAnimals(ctx, s, logger))
	count, _ = s.Count(ctx)
	assert.EqualValues(t, len(demoAnimals), count)
}

func idsOf(docs []models.Animal) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID())
	}
	return out
}

func TestSortNewestFirstPutsUndatedLast(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	docs := []models.Animal{
		{"id": "legacy"},
		{"id": "a", "createdAt": older},
		{"id": "b", "createdAt": newer},
		{"id": "c", "createdAt": newer},
	}

	SortNewestFirst(docs)
	assert.Equal(t, []string{"c", "b", "a", "legacy"}, idsOf(docs))
}
