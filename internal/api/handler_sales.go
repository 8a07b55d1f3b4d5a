package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-ops-backend/internal/model"
)

type saleRequest struct {
	DriverID  string     `json:"driver_id" binding:"required"`
	ProductID string     `json:"product_id" binding:"required"`
	Quantity  int        `json:"quantity" binding:"required,gt=0"`
	Total     *int64     `json:"total"`
	SoldAt    *time.Time `json:"sold_at"`
}

// ListSales handles GET /api/sales.
func (h *Handler) ListSales(c *gin.Context) {
	c.JSON(http.StatusOK, h.state.Sales())
}

// CreateSale handles POST /api/sales. Driver and product names are
// denormalized into the row at record time; total defaults to
// quantity x unit price when omitted.
func (h *Handler) CreateSale(c *gin.Context) {
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driver, ok := h.state.DriverByID(req.DriverID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "driver not found"})
		return
	}
	product, ok := h.state.ProductByID(req.ProductID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	total := int64(req.Quantity) * product.UnitPrice
	if req.Total != nil {
		total = *req.Total
	}
	soldAt := time.Now().UTC()
	if req.SoldAt != nil {
		soldAt = *req.SoldAt
	}

	sale := model.Sale{
		ID:          uuid.NewString(),
		DriverID:    driver.ID,
		DriverName:  driver.Name,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    req.Quantity,
		Total:       total,
		SoldAt:      soldAt,
	}
	if err := h.store.CreateSale(c.Request.Context(), &sale); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale"})
		return
	}

	h.refreshSales(c)
	c.JSON(http.StatusCreated, sale)
}

// DeleteSale handles DELETE /api/sales/:id.
func (h *Handler) DeleteSale(c *gin.Context) {
	if err := h.store.DeleteSale(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "sale not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale"})
		return
	}

	h.refreshSales(c)
	c.Status(http.StatusNoContent)
}

// GetSalesSummary handles GET /api/sales/summary: per-driver sale counts
// and revenue in one aggregation.
func (h *Handler) GetSalesSummary(c *gin.Context) {
	rows, err := h.store.SalesSummary(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate sales"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) refreshSales(c *gin.Context) {
	sales, err := h.store.ListSales(c.Request.Context())
	if err == nil {
		h.state.SetSales(sales)
	}
}
