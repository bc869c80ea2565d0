// internal/database/firestore/store.go
package firestore

import (
	"context"
	"strings"

	"animal-finder-api-server/internal/database"
	"animal-finder-api-server/internal/models"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Config selects the Firebase project and credentials.
type Config struct {
	ProjectID string
	// ServiceAccountJSON holds inline service account credentials.
	ServiceAccountJSON string
	CredentialsFile    string
	Collection         string
}

// Store is the Cloud Firestore implementation of database.Store.
type Store struct {
	client     *firestore.Client
	collection string
}

// Connect initializes a Firebase app and opens its Firestore client.
// With no credentials configured, application default credentials (or the
// emulator named by FIRESTORE_EMULATOR_HOST) are used.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	var opts []option.ClientOption
	switch {
	case cfg.ServiceAccountJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	var fbConfig *firebase.Config
	if cfg.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Firestore client")
	}

	return New(client, cfg.Collection), nil
}

func New(client *firestore.Client, collection string) *Store {
	return &Store{client: client, collection: collection}
}

func (s *Store) coll() *firestore.CollectionRef {
	return s.client.Collection(s.collection)
}

func (s *Store) doc(id string) (*firestore.DocumentRef, error) {
	if id == "" || strings.Contains(id, "/") {
		return nil, database.ErrNotFound
	}
	return s.coll().Doc(id), nil
}

func (s *Store) Get(ctx context.Context, id string) (models.Animal, error) {
	ref, err := s.doc(id)
	if err != nil {
		return nil, err
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, database.ErrNotFound
		}
		return nil, errors.Wrapf(err, "failed to get document %s", id)
	}
	return fromSnapshot(snap), nil
}

func (s *Store) Add(ctx context.Context, fields models.Animal) (string, error) {
	data := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		data[k] = v
	}
	delete(data, models.FieldID)
	data[models.FieldCreatedAt] = firestore.ServerTimestamp

	ref, _, err := s.coll().Add(ctx, data)
	if err != nil {
		return "", errors.Wrap(err, "failed to add document")
	}
	return ref.ID, nil
}

func (s *Store) MergeUpdate(ctx context.Context, id string, fields models.Animal) error {
	ref, err := s.doc(id)
	if err != nil {
		return err
	}

	updates := fieldUpdates(fields)
	if len(updates) == 0 {
		_, err := s.Get(ctx, id)
		return err
	}

	// Update, unlike Set with MergeAll, refuses to create a missing document.
	if _, err := ref.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return database.ErrNotFound
		}
		return errors.Wrapf(err, "failed to update document %s", id)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, q database.Query) ([]models.Animal, error) {
	fq := s.coll().Query
	for _, p := range q.Predicates {
		fq = fq.WherePath(firestore.FieldPath{p.Field}, string(p.Op), p.Value)
	}
	fq = fq.OrderBy(models.FieldCreatedAt, firestore.Desc).OrderBy(firestore.DocumentID, firestore.Desc)
	if q.After != nil {
		fq = fq.StartAfter(q.After.CreatedAt, q.After.ID)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}

	return s.getAll(ctx, fq)
}

// ScanAll reads the collection unordered and sorts in memory: ordering by
// createdAt server-side would drop documents that lack the field.
func (s *Store) ScanAll(ctx context.Context) ([]models.Animal, error) {
	docs, err := s.getAll(ctx, s.coll().Query)
	if err != nil {
		return nil, err
	}
	database.SortNewestFirst(docs)
	return docs, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	result, err := s.coll().NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count documents")
	}

	value, ok := result["all"].(*firestorepb.Value)
	if !ok {
		return 0, errors.Errorf("unexpected count result type %T", result["all"])
	}
	return value.GetIntegerValue(), nil
}

func (s *Store) Commit(ctx context.Context, b database.Batch) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, u := range b.Updates {
			ref, err := s.doc(u.ID)
			if err != nil {
				return errors.Wrapf(err, "batch update %q", u.ID)
			}
			if err := tx.Update(ref, fieldUpdates(u.Fields)); err != nil {
				return err
			}
		}
		for _, id := range b.Deletes {
			ref, err := s.doc(id)
			if err != nil {
				return errors.Wrapf(err, "batch delete %q", id)
			}
			// A plain delete of a missing document succeeds; Exists makes it fail the batch.
			if err := tx.Delete(ref, firestore.Exists); err != nil {
				return err
			}
		}
		return nil
	}, firestore.MaxAttempts(1))
	if err != nil {
		return errors.Wrap(err, "batch transaction failed")
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Close()
}

func (s *Store) getAll(ctx context.Context, q firestore.Query) ([]models.Animal, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to query documents")
	}

	animals := make([]models.Animal, 0, len(snaps))
	for _, snap := range snaps {
		animals = append(animals, fromSnapshot(snap))
	}
	return animals, nil
}

func fromSnapshot(snap *firestore.DocumentSnapshot) models.Animal {
	animal := models.Animal(snap.Data())
	if animal == nil {
		animal = models.Animal{}
	}
	animal.SetID(snap.Ref.ID)
	return animal
}

// fieldUpdates turns top-level fields into single-segment update paths so keys
// containing dots are not read as nested paths.
func fieldUpdates(fields map[string]interface{}) []firestore.Update {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		if k == models.FieldID || k == models.FieldCreatedAt {
			continue
		}
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: v})
	}
	return updates
}
