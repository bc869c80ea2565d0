// internal/animals/search.go
package animals

import (
	"context"
	"strings"

	"animal-finder-api-server/internal/apperrors"
	"animal-finder-api-server/internal/models"
)

// IDsAtLocation returns the ids of animals whose whereItIs equals location exactly.
func (s *Service) IDsAtLocation(ctx context.Context, location string) ([]string, error) {
	if location == "" {
		return nil, apperrors.Validation("location is required")
	}
	return s.scanIDs(ctx, "Failed to retrieve animals", func(a models.Animal) bool {
		loc, ok := a.WhereItIs()
		return ok && loc == location
	})
}

// IDsWithCharacteristic returns the ids of animals tagged with code.
func (s *Service) IDsWithCharacteristic(ctx context.Context, code string) ([]string, error) {
	if code == "" {
		return nil, apperrors.Validation("code is required")
	}
	return s.scanIDs(ctx, "Failed to fetch data", func(a models.Animal) bool {
		return a.HasCharacteristic(code)
	})
}

// IDsWithPictureFiles returns the ids of animals with at least one .jpg or .png image URL.
func (s *Service) IDsWithPictureFiles(ctx context.Context) ([]string, error) {
	return s.scanIDs(ctx, "Failed to fetch data", func(a models.Animal) bool {
		return a.HasImageMatching(func(url string) bool {
			return strings.HasSuffix(url, ".jpg") || strings.HasSuffix(url, ".png")
		})
	})
}

// IDsWithImageContaining returns the ids of animals with an image URL containing fragment.
func (s *Service) IDsWithImageContaining(ctx context.Context, fragment string) ([]string, error) {
	if fragment == "" {
		return nil, apperrors.Validation("image is required")
	}
	return s.scanIDs(ctx, "Failed to fetch data", func(a models.Animal) bool {
		return a.HasImageMatching(func(url string) bool {
			return strings.Contains(url, fragment)
		})
	})
}

// scanIDs walks the whole collection, newest first, collecting the ids that match.
func (s *Service) scanIDs(ctx context.Context, failure string, match func(models.Animal) bool) ([]string, error) {
	docs, err := s.store.ScanAll(ctx)
	if err != nil {
		return nil, apperrors.StoreFailure(failure, err)
	}

	ids := make([]string, 0)
	for _, doc := range docs {
		if match(doc) {
			ids = append(ids, doc.ID())
		}
	}
	return ids, nil
}
