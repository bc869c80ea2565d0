// internal/api/handlers/location_handler.go
package handlers

import (
	"net/http"

	"animal-finder-api-server/internal/animals"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	Service *animals.Service
}

// GetLocations lists the places active animals are kept, shelters excluded.
func (h *LocationHandler) GetLocations(c *gin.Context) {
	h.respond(c, animals.PermanentLocations)
}

// GetTemporaryHomes lists the temporary shelters holding active animals.
func (h *LocationHandler) GetTemporaryHomes(c *gin.Context) {
	h.respond(c, animals.TemporaryHomes)
}

// GetAllLocations lists every location, reunited animals included.
func (h *LocationHandler) GetAllLocations(c *gin.Context) {
	h.respond(c, animals.AllLocations)
}

func (h *LocationHandler) respond(c *gin.Context, view animals.LocationView) {
	locations, err := h.Service.Locations(c.Request.Context(), view)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"locations": locations})
}
