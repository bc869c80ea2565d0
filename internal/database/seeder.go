// internal/database/seeder.go
package database

import (
	"context"
	"log/slog"

	"animal-finder-api-server/internal/models"
)

// demoAnimals are inserted into an empty collection when seeding is enabled.
var demoAnimals = []models.Animal{
	{
		"species":         "cachorro",
		"sex":             "macho",
		"size":            "médio",
		"color":           "caramelo",
		"whereItIs":       "LT-Abrigo Centro",
		"characteristics": []interface{}{"coleira azul", "dócil"},
		"imageURLs":       []interface{}{},
	},
	{
		"species":         "gato",
		"sex":             "fêmea",
		"size":            "pequeno",
		"color":           "preto",
		"whereItIs":       "Clínica Veterinária Zona Sul",
		"characteristics": []interface{}{"castrada"},
		"imageURLs":       []interface{}{},
	},
	{
		"species":         "cachorro",
		"sex":             models.SexUnknown,
		"size":            "grande",
		"color":           "branco",
		"whereItIs":       "Ginásio Municipal",
		"characteristics": []interface{}{},
		"imageURLs":       []interface{}{},
		"foundOwner":      true,
	},
}

// SeedAnimals fills an empty collection with a few demo listings.
func SeedAnimals(ctx context.Context, store Store, logger *slog.Logger) error {
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}

	if count > 0 {
		logger.Info("collection already has documents, seeding skipped", "count", count)
		return nil
	}

	logger.Info("collection is empty, seeding demo animals")
	for _, animal := range demoAnimals {
		doc := animal.Clone()
		if _, ok := doc[models.FieldFoundOwner]; !ok {
			doc[models.FieldFoundOwner] = false
		}
		if _, err := store.Add(ctx, doc); err != nil {
			return err
		}
	}

	logger.Info("demo animals seeded", "count", len(demoAnimals))
	return nil
}
