// internal/animals/locations.go
package animals

import (
	"context"
	"sort"
	"strings"

	"animal-finder-api-server/internal/apperrors"
	"animal-finder-api-server/internal/models"
)

// TemporaryHomeMarker tags the location labels of temporary shelters.
const TemporaryHomeMarker = "LT"

// LocationView selects which derived location set to build.
type LocationView int

const (
	// PermanentLocations are the labels of active animals without the shelter marker.
	PermanentLocations LocationView = iota
	// TemporaryHomes are the labels of active animals carrying the shelter marker.
	TemporaryHomes
	// AllLocations is every non-empty label, reunited animals included.
	AllLocations
)

func (v LocationView) String() string {
	switch v {
	case PermanentLocations:
		return "permanent"
	case TemporaryHomes:
		return "temporary"
	case AllLocations:
		return "all"
	default:
		return "unknown"
	}
}

// IsTemporaryHome reports whether a location label names a temporary shelter.
func IsTemporaryHome(location string) bool {
	return strings.Contains(location, TemporaryHomeMarker)
}

// Locations scans the whole collection and returns the distinct location labels for view.
func (s *Service) Locations(ctx context.Context, view LocationView) ([]string, error) {
	docs, err := s.store.ScanAll(ctx)
	if err != nil {
		return nil, apperrors.StoreFailure("Failed to retrieve locations", err)
	}

	locations := ClassifyLocations(docs, view)
	s.logger.Debug("locations derived", "view", view.String(), "scanned", len(docs), "distinct", len(locations))
	return locations, nil
}

// ClassifyLocations builds the sorted distinct set of trimmed location labels
// for view. Missing, non-string and blank labels are skipped.
func ClassifyLocations(docs []models.Animal, view LocationView) []string {
	set := make(map[string]struct{})
	for _, doc := range docs {
		if view != AllLocations && doc.FoundOwner() {
			continue
		}

		raw, ok := doc.WhereItIs()
		if !ok {
			continue
		}
		location := strings.TrimSpace(raw)
		if location == "" {
			continue
		}

		switch view {
		case TemporaryHomes:
			if !IsTemporaryHome(location) {
				continue
			}
		case PermanentLocations:
			if IsTemporaryHome(location) {
				continue
			}
		}
		set[location] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for location := range set {
		out = append(out, location)
	}
	sort.Strings(out)
	return out
}
