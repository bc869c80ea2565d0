package mongodb

import (
	"testing"
	"time"

	"animal-finder-api-server/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFilter(t *testing.T) {
	t.Run("empty query", func(t *testing.T) {
		filter, err := buildFilter(database.Query{})
		require.NoError(t, err)
		assert.Equal(t, bson.M{}, filter)
	})

	t.Run("equality and membership", func(t *testing.T) {
		filter, err := buildFilter(database.Query{Predicates: []database.Predicate{
			{Field: "species", Op: database.OpEqual, Value: "gato"},
			{Field: "color", Op: database.OpIn, Value: []string{"preto", "branco"}},
			{Field: "id", Op: database.OpEqual, Value: "x"},
		}})
		require.NoError(t, err)
		assert.Equal(t, bson.M{"$and": bson.A{
			bson.M{"species": bson.M{"$eq": "gato"}},
			bson.M{"color": bson.M{"$in": []string{"preto", "branco"}}},
			bson.M{"_id": bson.M{"$eq": "x"}},
		}}, filter)
	})

	t.Run("cursor", func(t *testing.T) {
		oid := primitive.NewObjectID()
		at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		filter, err := buildFilter(database.Query{After: &database.Cursor{ID: oid.Hex(), CreatedAt: at}})
		require.NoError(t, err)
		assert.Equal(t, bson.M{"$and": bson.A{
			bson.M{"$or": bson.A{
				bson.M{"createdAt": bson.M{"$lt": at}},
				bson.M{"createdAt": at, "_id": bson.M{"$lt": oid}},
			}},
		}}, filter)
	})

	t.Run("invalid cursor id", func(t *testing.T) {
		_, err := buildFilter(database.Query{After: &database.Cursor{ID: "nope"}})
		assert.Error(t, err)
	})

	t.Run("unsupported operator", func(t *testing.T) {
		_, err := buildFilter(database.Query{Predicates: []database.Predicate{{Field: "a", Op: "array-contains", Value: "b"}}})
		assert.Error(t, err)
	})
}

func TestFromDocument(t *testing.T) {
	oid := primitive.NewObjectID()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	animal := fromDocument(bson.M{
		"_id":             oid,
		"createdAt":       primitive.NewDateTimeFromTime(at),
		"characteristics": primitive.A{"IGT-01", "dócil"},
		"contact":         bson.D{{Key: "phone", Value: "123"}},
		"owner":           bson.M{"ref": oid},
		"foundOwner":      false,
	})

	assert.Equal(t, oid.Hex(), animal.ID())
	createdAt, ok := animal.CreatedAt()
	require.True(t, ok)
	assert.True(t, at.Equal(createdAt))
	assert.Equal(t, []interface{}{"IGT-01", "dócil"}, animal["characteristics"])
	assert.Equal(t, map[string]interface{}{"phone": "123"}, animal["contact"])
	assert.Equal(t, map[string]interface{}{"ref": oid.Hex()}, animal["owner"])
	assert.Equal(t, []string{"IGT-01", "dócil"}, animal.Characteristics())
	assert.Equal(t, false, animal["foundOwner"])
}

func TestSetFieldsDropsStoreOwnedKeys(t *testing.T) {
	set := setFields(map[string]interface{}{
		"_id":       "64b7f0c2a1b2c3d4e5f60718",
		"id":        "x",
		"createdAt": time.Now(),
		"whereItIs": "LT-1",
	})
	assert.Equal(t, bson.M{"whereItIs": "LT-1"}, set)
}
