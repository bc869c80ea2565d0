// internal/animals/filter.go
package animals

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"animal-finder-api-server/internal/apperrors"
	"animal-finder-api-server/internal/database"
	"animal-finder-api-server/internal/models"

	"github.com/gorilla/schema"
)

// MaxColorValues is the largest color set accepted by a membership filter.
const MaxColorValues = 30

// ListParams are the query parameters of the listing endpoints. Multi-valued
// filters may be sent as repeated keys or with a "[]" suffix.
type ListParams struct {
	Species    []string `schema:"species"`
	Sex        []string `schema:"sex"`
	Size       []string `schema:"size"`
	WhereItIs  []string `schema:"whereItIs"`
	Color      []string `schema:"color"`
	StartAfter string   `schema:"startAfter"`
	Limit      string   `schema:"limit"`
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// ParseListParams decodes listing parameters from a query string.
func ParseListParams(values url.Values) (ListParams, error) {
	folded := url.Values{}
	for key, vals := range values {
		key = strings.TrimSuffix(key, "[]")
		for _, v := range vals {
			if v == "" {
				continue
			}
			folded.Add(key, v)
		}
	}

	var params ListParams
	if err := decoder.Decode(&params, folded); err != nil {
		return ListParams{}, apperrors.ErrValidation.WithMessage("Invalid query parameters").WithDetails(err.Error())
	}
	return params, nil
}

// PageRequest is a compiled listing query ready for the pagination engine.
type PageRequest struct {
	Predicates []database.Predicate
	Limit      int
	StartAfter string
}

// FilterCompiler turns listing parameters into store predicates.
type FilterCompiler struct {
	DefaultLimit int
	MaxLimit     int
}

// CompileActive builds the query for animals still waiting for their owner.
func (c FilterCompiler) CompileActive(p ListParams) (PageRequest, error) {
	limit, err := c.resolveLimit(p.Limit)
	if err != nil {
		return PageRequest{}, err
	}

	preds := make([]database.Predicate, 0, 6)
	if pred, ok := valuePredicate(models.FieldSpecies, p.Species); ok {
		preds = append(preds, pred)
	}
	if pred, ok := sexPredicate(p.Sex); ok {
		preds = append(preds, pred)
	}
	if pred, ok := valuePredicate(models.FieldSize, p.Size); ok {
		preds = append(preds, pred)
	}
	switch len(p.WhereItIs) {
	case 0:
	case 1:
		preds = append(preds, database.Predicate{Field: models.FieldWhereItIs, Op: database.OpEqual, Value: p.WhereItIs[0]})
	default:
		return PageRequest{}, apperrors.Validation("whereItIs accepts a single value")
	}
	if len(p.Color) > MaxColorValues {
		return PageRequest{}, apperrors.ErrTooManyValues.WithMessage(
			fmt.Sprintf("color accepts at most %d values, got %d", MaxColorValues, len(p.Color)))
	}
	if pred, ok := valuePredicate(models.FieldColor, p.Color); ok {
		preds = append(preds, pred)
	}
	preds = append(preds, database.Predicate{Field: models.FieldFoundOwner, Op: database.OpEqual, Value: false})

	return PageRequest{Predicates: preds, Limit: limit, StartAfter: p.StartAfter}, nil
}

// CompileReunions builds the query for reunited animals. Attribute filters are ignored.
func (c FilterCompiler) CompileReunions(p ListParams) (PageRequest, error) {
	limit, err := c.resolveLimit(p.Limit)
	if err != nil {
		return PageRequest{}, err
	}

	return PageRequest{
		Predicates: []database.Predicate{{Field: models.FieldFoundOwner, Op: database.OpEqual, Value: true}},
		Limit:      limit,
		StartAfter: p.StartAfter,
	}, nil
}

func (c FilterCompiler) resolveLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return c.DefaultLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, apperrors.Validation("limit must be a positive integer")
	}
	if c.MaxLimit > 0 && limit > c.MaxLimit {
		limit = c.MaxLimit
	}
	return limit, nil
}

// valuePredicate compiles one value to equality and several to membership.
func valuePredicate(field string, values []string) (database.Predicate, bool) {
	values = dedupe(values)
	switch len(values) {
	case 0:
		return database.Predicate{}, false
	case 1:
		return database.Predicate{Field: field, Op: database.OpEqual, Value: values[0]}, true
	default:
		return database.Predicate{Field: field, Op: database.OpIn, Value: values}, true
	}
}

// sexPredicate always admits animals whose sex is unknown.
func sexPredicate(values []string) (database.Predicate, bool) {
	if len(values) == 0 {
		return database.Predicate{}, false
	}
	all := make([]string, 0, len(values)+1)
	all = append(all, values...)
	all = append(all, models.SexUnknown)
	return valuePredicate(models.FieldSex, all)
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
