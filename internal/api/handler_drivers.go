package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-ops-backend/internal/model"
)

type driverRequest struct {
	Name           string `json:"name" binding:"required"`
	Classification string `json:"classification"`
	Active         *bool  `json:"active"`
	Phone          string `json:"phone"`
	HomeLocationID string `json:"home_location_id"`
}

func (r driverRequest) classification() (string, bool) {
	switch r.Classification {
	case "":
		return model.ClassContract, true
	case model.ClassDedicated, model.ClassContract:
		return r.Classification, true
	}
	return "", false
}

// ListDrivers handles GET /api/drivers.
func (h *Handler) ListDrivers(c *gin.Context) {
	c.JSON(http.StatusOK, h.state.Drivers())
}

// CreateDriver handles POST /api/drivers.
func (h *Handler) CreateDriver(c *gin.Context) {
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	class, ok := req.classification()
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "classification must be dedicated or contract"})
		return
	}

	driver := model.Driver{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Classification: class,
		Active:         req.Active == nil || *req.Active,
		Phone:          req.Phone,
		HomeLocationID: req.HomeLocationID,
	}
	if err := h.store.CreateDriver(c.Request.Context(), &driver); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create driver"})
		return
	}

	h.refreshDrivers(c)
	c.JSON(http.StatusCreated, driver)
}

// UpdateDriver handles PUT /api/drivers/:id.
func (h *Handler) UpdateDriver(c *gin.Context) {
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	class, ok := req.classification()
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "classification must be dedicated or contract"})
		return
	}

	driver := model.Driver{
		ID:             c.Param("id"),
		Name:           req.Name,
		Classification: class,
		Active:         req.Active == nil || *req.Active,
		Phone:          req.Phone,
		HomeLocationID: req.HomeLocationID,
	}
	if err := h.store.UpdateDriver(c.Request.Context(), &driver); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "driver not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver"})
		return
	}

	h.refreshDrivers(c)
	c.JSON(http.StatusOK, driver)
}

// DeleteDriver handles DELETE /api/drivers/:id.
func (h *Handler) DeleteDriver(c *gin.Context) {
	if err := h.store.DeleteDriver(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "driver not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete driver"})
		return
	}

	h.refreshDrivers(c)
	c.Status(http.StatusNoContent)
}

func (h *Handler) refreshDrivers(c *gin.Context) {
	drivers, err := h.store.ListDrivers(c.Request.Context())
	if err == nil {
		h.state.SetDrivers(drivers)
	}
}
