package animals

import (
	"context"
	"testing"

	"animal-finder-api-server/internal/apperrors"
	"animal-finder-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelocate(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	ids := addAll(t, store,
		models.Animal{"whereItIs": "A", "species": "gato"},
		models.Animal{"whereItIs": "B"},
		models.Animal{"whereItIs": "C"},
	)

	require.NoError(t, svc.Relocate(ctx, []string{ids[0], ids[1], ids[0]}, "LT - Nova"))

	a, _ := store.Get(ctx, ids[0])
	b, _ := store.Get(ctx, ids[1])
	c, _ := store.Get(ctx, ids[2])
	assert.Equal(t, "LT - Nova", a["whereItIs"])
	assert.Equal(t, "gato", a["species"], "other fields untouched")
	assert.Equal(t, "LT - Nova", b["whereItIs"])
	assert.Equal(t, "C", c["whereItIs"])
}

func TestRelocateMissingIDFailsWholeBatch(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	ids := addAll(t, store, models.Animal{"whereItIs": "A"})

	err := svc.Relocate(ctx, []string{ids[0], "missing"}, "B")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStoreFailure)

	a, _ := store.Get(ctx, ids[0])
	assert.Equal(t, "A", a["whereItIs"])
}

func TestDeleteMany(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	ids := addAll(t, store, models.Animal{}, models.Animal{}, models.Animal{})

	require.NoError(t, svc.DeleteMany(ctx, ids[:2]))
	count, _ := store.Count(ctx)
	assert.EqualValues(t, 1, count)

	err := svc.DeleteMany(ctx, []string{ids[2], ids[0]})
	assert.ErrorIs(t, err, apperrors.ErrStoreFailure)
	count, _ = store.Count(ctx)
	assert.EqualValues(t, 1, count, "failed batch deletes nothing")
}

func TestBatchInputValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for name, ids := range map[string][]string{
		"nil":   nil,
		"empty": {},
		"blank": {"ok", "  "},
	} {
		t.Run(name, func(t *testing.T) {
			err := svc.DeleteMany(ctx, ids)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)

			err = svc.Relocate(ctx, ids, "A")
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}
