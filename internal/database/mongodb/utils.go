package mongodb

import (
	"fmt"

	"animal-finder-api-server/internal/database"
	"animal-finder-api-server/internal/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func buildFilter(q database.Query) (bson.M, error) {
	clauses := bson.A{}
	for _, p := range q.Predicates {
		clause, err := predicateBSON(p)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}

	if q.After != nil {
		oid, err := primitive.ObjectIDFromHex(q.After.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid cursor id %q", q.After.ID)
		}
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{models.FieldCreatedAt: bson.M{"$lt": q.After.CreatedAt}},
			bson.M{models.FieldCreatedAt: q.After.CreatedAt, "_id": bson.M{"$lt": oid}},
		}})
	}

	if len(clauses) == 0 {
		return bson.M{}, nil
	}
	return bson.M{"$and": clauses}, nil
}

func predicateBSON(p database.Predicate) (bson.M, error) {
	field := mapField(p.Field)
	switch p.Op {
	case database.OpEqual:
		return bson.M{field: bson.M{"$eq": p.Value}}, nil
	case database.OpIn:
		return bson.M{field: bson.M{"$in": p.Value}}, nil
	default:
		return nil, errors.Errorf("unsupported operator %q", p.Op)
	}
}

func mapField(field string) string {
	if field == models.FieldID {
		return "_id"
	}
	return field
}

// fromDocument converts a decoded document into a record, replacing driver
// types with plain Go values so the result encodes cleanly as JSON.
func fromDocument(raw bson.M) models.Animal {
	animal := make(models.Animal, len(raw))
	for k, v := range raw {
		if k == "_id" {
			if oid, ok := v.(primitive.ObjectID); ok {
				animal.SetID(oid.Hex())
			} else {
				animal.SetID(fmt.Sprint(v))
			}
			continue
		}
		animal[k] = normalize(v)
	}
	return animal
}

func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.ObjectID:
		return val.Hex()
	case primitive.A:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case bson.M:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case bson.D:
		out := make(map[string]interface{}, len(val))
		for _, e := range val {
			out[e.Key] = normalize(e.Value)
		}
		return out
	default:
		return v
	}
}
