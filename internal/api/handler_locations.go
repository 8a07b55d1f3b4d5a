package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-ops-backend/internal/model"
)

type locationRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Address  string `json:"address"`
}

func (r locationRequest) category() (string, bool) {
	switch r.Category {
	case "":
		return model.CategoryFixed, true
	case model.CategoryRotation, model.CategoryFixed:
		return r.Category, true
	}
	return "", false
}

// ListLocations handles GET /api/locations.
func (h *Handler) ListLocations(c *gin.Context) {
	c.JSON(http.StatusOK, h.state.Locations())
}

// CreateLocation handles POST /api/locations.
func (h *Handler) CreateLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, ok := req.category()
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "category must be rotation or fixed"})
		return
	}

	location := model.Location{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Category: category,
		Address:  req.Address,
	}
	if err := h.store.CreateLocation(c.Request.Context(), &location); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create location"})
		return
	}

	h.refreshLocations(c)
	c.JSON(http.StatusCreated, location)
}

// UpdateLocation handles PUT /api/locations/:id.
func (h *Handler) UpdateLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, ok := req.category()
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "category must be rotation or fixed"})
		return
	}

	location := model.Location{
		ID:       c.Param("id"),
		Name:     req.Name,
		Category: category,
		Address:  req.Address,
	}
	if err := h.store.UpdateLocation(c.Request.Context(), &location); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
		return
	}

	h.refreshLocations(c)
	c.JSON(http.StatusOK, location)
}

// DeleteLocation handles DELETE /api/locations/:id.
func (h *Handler) DeleteLocation(c *gin.Context) {
	if err := h.store.DeleteLocation(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete location"})
		return
	}

	h.refreshLocations(c)
	c.Status(http.StatusNoContent)
}

func (h *Handler) refreshLocations(c *gin.Context) {
	locations, err := h.store.ListLocations(c.Request.Context())
	if err == nil {
		h.state.SetLocations(locations)
	}
}
