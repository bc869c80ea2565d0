// Package animals implements the listing queries, derived location sets and
// batch mutations over the animal record collection.
package animals

import (
	"context"
	"log/slog"

	"animal-finder-api-server/internal/apperrors"
	"animal-finder-api-server/internal/database"
	"animal-finder-api-server/internal/models"

	"github.com/pkg/errors"
)

// Service holds no state of its own; every call goes to the store.
type Service struct {
	store   database.Store
	filters FilterCompiler
	logger  *slog.Logger
}

func NewService(store database.Store, filters FilterCompiler, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		filters: filters,
		logger:  logger.With("component", "animals"),
	}
}

// Create stores a new listing and returns its id. The store assigns id and
// createdAt; foundOwner defaults to false.
func (s *Service) Create(ctx context.Context, fields models.Animal) (string, error) {
	if fields == nil {
		return "", apperrors.Validation("Request body must be a JSON object")
	}

	doc := fields.Clone()
	doc.StripProtectedFields()
	if err := checkFoundOwner(doc); err != nil {
		return "", err
	}
	if _, ok := doc[models.FieldFoundOwner]; !ok {
		doc[models.FieldFoundOwner] = false
	}

	id, err := s.store.Add(ctx, doc)
	if err != nil {
		return "", apperrors.StoreFailure("Error adding document", err)
	}

	s.logger.Info("animal created", "id", id)
	return id, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.Animal, error) {
	animal, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.StoreFailure("Error retrieving animal data", err)
	}
	return animal, nil
}

// Update merges the supplied fields into an existing listing.
func (s *Service) Update(ctx context.Context, id string, fields models.Animal) error {
	doc := fields.Clone()
	doc.StripProtectedFields()
	if len(doc) == 0 {
		return apperrors.Validation("No fields to update")
	}
	if err := checkFoundOwner(doc); err != nil {
		return err
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.store.MergeUpdate(ctx, id, doc); err != nil {
		// Deleted between the existence check and the write.
		if errors.Is(err, database.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return apperrors.StoreFailure("Error updating animal", err)
	}

	s.logger.Info("animal updated", "id", id, "fields", len(doc))
	return nil
}

// Count returns the size of the whole collection.
func (s *Service) Count(ctx context.Context) (int64, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, apperrors.StoreFailure("Failed to count animals", err)
	}
	return count, nil
}

// checkFoundOwner keeps foundOwner a boolean when present; any other value
// would leave the record in neither the active nor the reunited listing.
func checkFoundOwner(doc models.Animal) error {
	v, ok := doc[models.FieldFoundOwner]
	if !ok {
		return nil
	}
	if _, isBool := v.(bool); !isBool {
		return apperrors.Validation("foundOwner must be a boolean")
	}
	return nil
}
