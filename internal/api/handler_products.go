package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-ops-backend/internal/model"
)

type productRequest struct {
	Name      string `json:"name" binding:"required"`
	UnitPrice int64  `json:"unit_price"`
	Active    *bool  `json:"active"`
}

// ListProducts handles GET /api/products. Lists serve the in-memory
// snapshot, which writes keep in sync with the store.
func (h *Handler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.state.Products())
}

// CreateProduct handles POST /api/products.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := model.Product{
		ID:        uuid.NewString(),
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Active:    req.Active == nil || *req.Active,
	}
	if err := h.store.CreateProduct(c.Request.Context(), &product); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	h.refreshProducts(c)
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/:id.
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := model.Product{
		ID:        c.Param("id"),
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Active:    req.Active == nil || *req.Active,
	}
	if err := h.store.UpdateProduct(c.Request.Context(), &product); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	h.refreshProducts(c)
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/:id.
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.store.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	h.refreshProducts(c)
	c.Status(http.StatusNoContent)
}

// refreshProducts re-reads the canonical product list into the snapshot.
func (h *Handler) refreshProducts(c *gin.Context) {
	products, err := h.store.ListProducts(c.Request.Context())
	if err == nil {
		h.state.SetProducts(products)
	}
}
