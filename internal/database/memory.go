// internal/database/memory.go
package database

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"animal-finder-api-server/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MemoryStore keeps the collection in process memory. It is used by tests and
// by the "memory" driver for local development.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]models.Animal
	now  func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the clock used to stamp createdAt.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) {
		m.now = now
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		docs: make(map[string]models.Animal),
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MemoryStore) Get(ctx context.Context, id string) (models.Animal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return doc.Clone(), nil
}

func (m *MemoryStore) Add(ctx context.Context, fields models.Animal) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc := fields.Clone()
	doc.StripProtectedFields()
	id := uuid.New().String()
	doc.SetID(id)
	doc[models.FieldCreatedAt] = m.now()
	m.docs[id] = doc
	return id, nil
}

func (m *MemoryStore) MergeUpdate(ctx context.Context, id string, fields models.Animal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		if k == models.FieldID || k == models.FieldCreatedAt {
			continue
		}
		doc[k] = v
	}
	return nil
}

func (m *MemoryStore) Query(ctx context.Context, q Query) ([]models.Animal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]models.Animal, 0)
	for _, doc := range m.sorted() {
		if q.After != nil && !isAfter(doc, *q.After) {
			continue
		}
		if !matchesAll(doc, q.Predicates) {
			continue
		}
		matched = append(matched, doc.Clone())
		if q.Limit > 0 && len(matched) == q.Limit {
			break
		}
	}
	return matched, nil
}

func (m *MemoryStore) ScanAll(ctx context.Context) ([]models.Animal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := m.sorted()
	out := make([]models.Animal, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.Clone())
	}
	return out, nil
}

func (m *MemoryStore) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.docs)), nil
}

func (m *MemoryStore) Commit(ctx context.Context, b Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Validate every reference before touching anything so a failed batch leaves no trace.
	for _, u := range b.Updates {
		if _, ok := m.docs[u.ID]; !ok {
			return errors.Wrapf(ErrNotFound, "batch update %q", u.ID)
		}
	}
	for _, id := range b.Deletes {
		if _, ok := m.docs[id]; !ok {
			return errors.Wrapf(ErrNotFound, "batch delete %q", id)
		}
	}

	for _, u := range b.Updates {
		doc := m.docs[u.ID]
		for k, v := range u.Fields {
			doc[k] = v
		}
	}
	for _, id := range b.Deletes {
		delete(m.docs, id)
	}
	return nil
}

func (m *MemoryStore) Close(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) sorted() []models.Animal {
	docs := make([]models.Animal, 0, len(m.docs))
	for _, doc := range m.docs {
		docs = append(docs, doc)
	}
	SortNewestFirst(docs)
	return docs
}

// SortNewestFirst orders docs by createdAt descending, then id descending.
// Documents without createdAt sort last, as they have no place in the ordering.
func SortNewestFirst(docs []models.Animal) {
	sort.SliceStable(docs, func(i, j int) bool {
		ti, oki := docs[i].CreatedAt()
		tj, okj := docs[j].CreatedAt()
		if oki != okj {
			return oki
		}
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return docs[i].ID() > docs[j].ID()
	})
}

func isAfter(doc models.Animal, c Cursor) bool {
	created, ok := doc.CreatedAt()
	if !ok {
		return false
	}
	if !created.Equal(c.CreatedAt) {
		return created.Before(c.CreatedAt)
	}
	return doc.ID() < c.ID
}

func matchesAll(doc models.Animal, preds []Predicate) bool {
	for _, p := range preds {
		if !matches(doc, p) {
			return false
		}
	}
	return true
}

func matches(doc models.Animal, p Predicate) bool {
	v, ok := doc[p.Field]
	if !ok {
		return false
	}
	switch p.Op {
	case OpEqual:
		return reflect.DeepEqual(v, p.Value)
	case OpIn:
		rv := reflect.ValueOf(p.Value)
		if rv.Kind() != reflect.Slice {
			return false
		}
		for i := 0; i < rv.Len(); i++ {
			if reflect.DeepEqual(v, rv.Index(i).Interface()) {
				return true
			}
		}
	}
	return false
}
