// internal/database/mongodb/store.go
package mongodb

import (
	"context"
	"time"

	"animal-finder-api-server/internal/database"
	"animal-finder-api-server/internal/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the MongoDB implementation of database.Store. Batches run inside a
// multi-document transaction, so the server must be a replica set or sharded cluster.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect opens a client, checks the connection and returns a store over dbName.collection.
func Connect(ctx context.Context, uri, dbName, collection string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to MongoDB")
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "failed to ping MongoDB")
	}

	return New(client, client.Database(dbName).Collection(collection)), nil
}

func New(client *mongo.Client, coll *mongo.Collection) *Store {
	return &Store{client: client, coll: coll}
}

// EnsureIndexes creates the compound index backing the listing order.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: models.FieldCreatedAt, Value: -1}, {Key: "_id", Value: -1}},
	})
	return errors.Wrap(err, "failed to create createdAt index")
}

func (s *Store) Get(ctx context.Context, id string) (models.Animal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Not an identifier this store could have issued.
		return nil, database.ErrNotFound
	}

	var raw bson.M
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, errors.Wrapf(err, "failed to get document %s", id)
	}

	return fromDocument(raw), nil
}

func (s *Store) Add(ctx context.Context, fields models.Animal) (string, error) {
	doc := bson.M{}
	for k, v := range fields {
		doc[k] = v
	}
	delete(doc, models.FieldID)

	oid := primitive.NewObjectID()
	doc["_id"] = oid
	doc[models.FieldCreatedAt] = time.Now().UTC()

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return "", errors.Wrap(err, "failed to insert document")
	}
	return oid.Hex(), nil
}

func (s *Store) MergeUpdate(ctx context.Context, id string, fields models.Animal) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return database.ErrNotFound
	}

	set := setFields(fields)
	if len(set) == 0 {
		_, err := s.Get(ctx, id)
		return err
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return errors.Wrapf(err, "failed to update document %s", id)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (s *Store) Query(ctx context.Context, q database.Query) ([]models.Animal, error) {
	filter, err := buildFilter(q)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find().SetSort(listingSort())
	if q.Limit > 0 {
		findOptions.SetLimit(int64(q.Limit))
	}

	return s.find(ctx, filter, findOptions)
}

func (s *Store) ScanAll(ctx context.Context) ([]models.Animal, error) {
	return s.find(ctx, bson.M{}, options.Find().SetSort(listingSort()))
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	count, err := s.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count documents")
	}
	return count, nil
}

// Commit applies the batch in a single transaction attempt. Unlike
// WithTransaction, transient transaction errors are returned, not retried.
func (s *Store) Commit(ctx context.Context, b database.Batch) error {
	session, err := s.client.StartSession()
	if err != nil {
		return errors.Wrap(err, "failed to start session")
	}
	defer session.EndSession(ctx)

	if err := session.StartTransaction(); err != nil {
		return errors.Wrap(err, "failed to start transaction")
	}
	sc := mongo.NewSessionContext(ctx, session)

	if err := s.applyBatch(sc, b); err != nil {
		_ = session.AbortTransaction(context.Background())
		return errors.Wrap(err, "batch transaction failed")
	}
	if err := session.CommitTransaction(sc); err != nil {
		return errors.Wrap(err, "batch transaction failed")
	}
	return nil
}

func (s *Store) applyBatch(sc mongo.SessionContext, b database.Batch) error {
	for _, u := range b.Updates {
		oid, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return errors.Wrapf(database.ErrNotFound, "batch update %q", u.ID)
		}
		result, err := s.coll.UpdateOne(sc, bson.M{"_id": oid}, bson.M{"$set": setFields(u.Fields)})
		if err != nil {
			return err
		}
		if result.MatchedCount == 0 {
			return errors.Wrapf(database.ErrNotFound, "batch update %q", u.ID)
		}
	}

	for _, id := range b.Deletes {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return errors.Wrapf(database.ErrNotFound, "batch delete %q", id)
		}
		result, err := s.coll.DeleteOne(sc, bson.M{"_id": oid})
		if err != nil {
			return err
		}
		if result.DeletedCount == 0 {
			return errors.Wrapf(database.ErrNotFound, "batch delete %q", id)
		}
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Animal, error) {
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query documents")
	}
	defer cursor.Close(ctx)

	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, errors.Wrap(err, "failed to decode documents")
	}

	animals := make([]models.Animal, 0, len(raws))
	for _, raw := range raws {
		animals = append(animals, fromDocument(raw))
	}
	return animals, nil
}

func listingSort() bson.D {
	return bson.D{{Key: models.FieldCreatedAt, Value: -1}, {Key: "_id", Value: -1}}
}

func setFields(fields map[string]interface{}) bson.M {
	set := bson.M{}
	for k, v := range fields {
		if k == models.FieldID || k == models.FieldCreatedAt || k == "_id" {
			continue
		}
		set[k] = v
	}
	return set
}
