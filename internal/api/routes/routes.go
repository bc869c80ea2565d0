// internal/api/routes/routes.go
package routes

import (
	"log/slog"
	"time"

	"animal-finder-api-server/config"
	"animal-finder-api-server/internal/animals"
	"animal-finder-api-server/internal/api/handlers"
	"animal-finder-api-server/internal/api/middleware"
	"animal-finder-api-server/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the handlers and middlewares onto a new gin engine.
func SetupRouter(
	cfg config.Config,
	service *animals.Service,
	uploader storage.Uploader,
	logger *slog.Logger,
) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxBytes
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.Server)))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.ErrorHandler(logger))

	animalHandler := &handlers.AnimalHandler{Service: service}
	locationHandler := &handlers.LocationHandler{Service: service}
	searchHandler := &handlers.SearchHandler{Service: service}
	uploadHandler := &handlers.UploadHandler{Uploader: uploader, Logger: logger.With("component", "upload")}

	router.POST("/upload", uploadHandler.Upload)

	// Records
	router.POST("/add-animal", animalHandler.AddAnimal)
	router.GET("/animals", animalHandler.ListAnimals)
	router.GET("/happy-reunions", animalHandler.ListHappyReunions)
	router.GET("/animal/:id", animalHandler.GetAnimal)
	router.PUT("/animal/:id", animalHandler.UpdateAnimal)
	router.GET("/animal-count", animalHandler.CountAnimals)
	router.PATCH("/animals-location", animalHandler.RelocateAnimals)
	router.DELETE("/animals-delete", animalHandler.DeleteAnimals)

	// Derived location sets
	router.GET("/locations", locationHandler.GetLocations)
	router.GET("/temporary-homes", locationHandler.GetTemporaryHomes)
	router.GET("/all-locations", locationHandler.GetAllLocations)

	// Full-scan maintenance lookups
	router.GET("/animals-on-location", searchHandler.AnimalsOnLocation)
	router.GET("/iguatemi", searchHandler.SearchByCharacteristic)
	router.GET("/search-jpg-entries", searchHandler.SearchPictureFiles)
	router.GET("/search-specific-image", searchHandler.SearchSpecificImage)

	return router
}

func corsConfig(server config.ServerConfig) cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}

	origins := server.Origins()
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	return c
}
