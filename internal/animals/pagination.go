// internal/animals/pagination.go
package animals

import (
	"context"

	"animal-finder-api-server/internal/apperrors"
	"animal-finder-api-server/internal/database"
	"animal-finder-api-server/internal/models"

	"github.com/pkg/errors"
)

// Page is one page of a listing. NextPageToken is the id of the last animal
// in the page, or nil when the page is empty.
type Page struct {
	Animals       []models.Animal `json:"animals"`
	NextPageToken *string         `json:"nextPageToken"`
}

// ListActive returns a page of animals that have not found their owner.
func (s *Service) ListActive(ctx context.Context, params ListParams) (Page, error) {
	req, err := s.filters.CompileActive(params)
	if err != nil {
		return Page{}, err
	}
	return s.Paginate(ctx, req)
}

// ListReunions returns a page of animals reunited with their owner.
func (s *Service) ListReunions(ctx context.Context, params ListParams) (Page, error) {
	req, err := s.filters.CompileReunions(params)
	if err != nil {
		return Page{}, err
	}
	return s.Paginate(ctx, req)
}

// Paginate runs a compiled query in createdAt-descending order. The cursor is
// resolved against the live collection, so it follows the current filters
// rather than the ones in force when it was issued.
func (s *Service) Paginate(ctx context.Context, req PageRequest) (Page, error) {
	q := database.Query{Predicates: req.Predicates, Limit: req.Limit}

	if req.StartAfter != "" {
		cursor, err := s.resolveCursor(ctx, req.StartAfter)
		if err != nil {
			return Page{}, err
		}
		q.After = cursor
	}

	docs, err := s.store.Query(ctx, q)
	if err != nil {
		return Page{}, apperrors.StoreFailure("Failed to fetch animals", err)
	}

	page := Page{Animals: docs}
	if page.Animals == nil {
		page.Animals = []models.Animal{}
	}
	if len(docs) > 0 {
		last := docs[len(docs)-1].ID()
		page.NextPageToken = &last
	}
	return page, nil
}

func (s *Service) resolveCursor(ctx context.Context, id string) (*database.Cursor, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			s.logger.Warn("pagination cursor not found", "startAfter", id)
			return nil, apperrors.ErrInvalidCursor
		}
		return nil, apperrors.StoreFailure("Failed to fetch animals", err)
	}

	createdAt, ok := doc.CreatedAt()
	if !ok {
		s.logger.Warn("pagination cursor has no createdAt", "startAfter", id)
		return nil, apperrors.ErrInvalidCursor
	}
	return &database.Cursor{ID: doc.ID(), CreatedAt: createdAt}, nil
}
