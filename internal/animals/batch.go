// internal/animals/batch.go
package animals

import (
	"context"
	"strings"

	"animal-finder-api-server/internal/apperrors"
	"animal-finder-api-server/internal/database"
	"animal-finder-api-server/internal/models"
)

// Relocate sets whereItIs on every listed animal in one atomic batch. Ids are
// not checked beforehand: a missing animal fails the whole batch.
func (s *Service) Relocate(ctx context.Context, ids []string, location string) error {
	ids, err := normalizeIDs(ids)
	if err != nil {
		return err
	}

	batch := database.Batch{Updates: make([]database.Update, 0, len(ids))}
	for _, id := range ids {
		batch.Updates = append(batch.Updates, database.Update{
			ID:     id,
			Fields: map[string]interface{}{models.FieldWhereItIs: location},
		})
	}

	if err := s.store.Commit(ctx, batch); err != nil {
		s.logger.Error("batch relocation failed", "count", len(ids), "error", err)
		return apperrors.StoreFailure("Failed to update locations", err)
	}

	s.logger.Info("animals relocated", "count", len(ids), "location", location)
	return nil
}

// DeleteMany removes every listed animal in one atomic batch.
func (s *Service) DeleteMany(ctx context.Context, ids []string) error {
	ids, err := normalizeIDs(ids)
	if err != nil {
		return err
	}

	if err := s.store.Commit(ctx, database.Batch{Deletes: ids}); err != nil {
		s.logger.Error("batch deletion failed", "count", len(ids), "error", err)
		return apperrors.StoreFailure("Failed to delete animals", err)
	}

	s.logger.Info("animals deleted", "count", len(ids))
	return nil
}

// normalizeIDs rejects empty lists and blank ids and drops duplicates.
func normalizeIDs(ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, apperrors.Validation("No IDs provided or invalid format.")
	}

	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return nil, apperrors.Validation("No IDs provided or invalid format.")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
