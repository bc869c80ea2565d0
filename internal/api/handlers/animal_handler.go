// internal/api/handlers/animal_handler.go
package handlers

import (
	"net/http"

	"animal-finder-api-server/internal/animals"
	"animal-finder-api-server/internal/apperrors"
	"animal-finder-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

type AnimalHandler struct {
	Service *animals.Service
}

// RelocateRequest is the body of PATCH /animals-location.
type RelocateRequest struct {
	IDs      []string `json:"ids"`
	Location *string  `json:"location"`
}

// DeleteRequest is the body of DELETE /animals-delete.
type DeleteRequest struct {
	IDs []string `json:"ids"`
}

// AddAnimal stores a new listing from an arbitrary JSON object.
func (h *AnimalHandler) AddAnimal(c *gin.Context) {
	var fields models.Animal
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.Error(apperrors.ErrValidation.WithMessage("Request body must be a JSON object").WithDetails(err.Error()))
		return
	}

	id, err := h.Service.Create(c.Request.Context(), fields)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document written with ID: " + id, "id": id})
}

// ListAnimals returns a page of animals still waiting for their owner.
func (h *AnimalHandler) ListAnimals(c *gin.Context) {
	params, err := animals.ParseListParams(c.Request.URL.Query())
	if err != nil {
		c.Error(err)
		return
	}

	page, err := h.Service.ListActive(c.Request.Context(), params)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// ListHappyReunions returns a page of animals that found their owner.
func (h *AnimalHandler) ListHappyReunions(c *gin.Context) {
	params, err := animals.ParseListParams(c.Request.URL.Query())
	if err != nil {
		c.Error(err)
		return
	}

	page, err := h.Service.ListReunions(c.Request.Context(), params)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *AnimalHandler) GetAnimal(c *gin.Context) {
	animal, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, animal)
}

// UpdateAnimal merges the body into an existing listing.
func (h *AnimalHandler) UpdateAnimal(c *gin.Context) {
	id := c.Param("id")

	var fields models.Animal
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.Error(apperrors.ErrValidation.WithMessage("Request body must be a JSON object").WithDetails(err.Error()))
		return
	}

	if err := h.Service.Update(c.Request.Context(), id, fields); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Animal updated successfully.", "id": id})
}

func (h *AnimalHandler) CountAnimals(c *gin.Context) {
	count, err := h.Service.Count(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// RelocateAnimals moves every listed animal to one location atomically.
func (h *AnimalHandler) RelocateAnimals(c *gin.Context) {
	var req RelocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.ErrValidation.WithMessage("No IDs provided or invalid format.").WithDetails(err.Error()))
		return
	}
	if req.Location == nil {
		c.Error(apperrors.Validation("location is required"))
		return
	}

	if err := h.Service.Relocate(c.Request.Context(), req.IDs, *req.Location); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Locations updated successfully."})
}

// DeleteAnimals removes every listed animal atomically.
func (h *AnimalHandler) DeleteAnimals(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.ErrValidation.WithMessage("No IDs provided or invalid format.").WithDetails(err.Error()))
		return
	}

	if err := h.Service.DeleteMany(c.Request.Context(), req.IDs); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Animals deleted successfully."})
}
