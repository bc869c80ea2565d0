// internal/api/handlers/search_handler.go
package handlers

import (
	"net/http"

	"animal-finder-api-server/internal/animals"

	"github.com/gin-gonic/gin"
)

// SearchHandler serves the maintenance lookups that scan the whole collection
// and answer with bare animal ids.
type SearchHandler struct {
	Service *animals.Service
}

func (h *SearchHandler) AnimalsOnLocation(c *gin.Context) {
	ids, err := h.Service.IDsAtLocation(c.Request.Context(), c.Query("location"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"animals": ids})
}

// SearchByCharacteristic finds animals tagged with a shelter code (GET /iguatemi).
func (h *SearchHandler) SearchByCharacteristic(c *gin.Context) {
	ids, err := h.Service.IDsWithCharacteristic(c.Request.Context(), c.Query("code"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ids)
}

func (h *SearchHandler) SearchPictureFiles(c *gin.Context) {
	ids, err := h.Service.IDsWithPictureFiles(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ids)
}

func (h *SearchHandler) SearchSpecificImage(c *gin.Context) {
	ids, err := h.Service.IDsWithImageContaining(c.Request.Context(), c.Query("image"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ids)
}
