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

type paymentRequest struct {
	DriverID    string     `json:"driver_id" binding:"required"`
	PeriodStart time.Time  `json:"period_start" binding:"required"`
	PeriodEnd   time.Time  `json:"period_end" binding:"required"`
	Amount      int64      `json:"amount" binding:"required"`
	Paid        bool       `json:"paid"`
	PaidAt      *time.Time `json:"paid_at"`
}

// ListPayments handles GET /api/payments.
func (h *Handler) ListPayments(c *gin.Context) {
	c.JSON(http.StatusOK, h.state.Payments())
}

// CreatePayment handles POST /api/payments.
func (h *Handler) CreatePayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driver, ok := h.state.DriverByID(req.DriverID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "driver not found"})
		return
	}

	payment := model.Payment{
		ID:          uuid.NewString(),
		DriverID:    driver.ID,
		DriverName:  driver.Name,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Amount:      req.Amount,
		Paid:        req.Paid,
		PaidAt:      req.PaidAt,
	}
	if err := h.store.CreatePayment(c.Request.Context(), &payment); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		return
	}

	h.refreshPayments(c)
	c.JSON(http.StatusCreated, payment)
}

// UpdatePayment handles PUT /api/payments/:id.
func (h *Handler) UpdatePayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driver, ok := h.state.DriverByID(req.DriverID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "driver not found"})
		return
	}

	payment := model.Payment{
		ID:          c.Param("id"),
		DriverID:    driver.ID,
		DriverName:  driver.Name,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Amount:      req.Amount,
		Paid:        req.Paid,
		PaidAt:      req.PaidAt,
	}
	if err := h.store.UpdatePayment(c.Request.Context(), &payment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "payment not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment"})
		return
	}

	h.refreshPayments(c)
	c.JSON(http.StatusOK, payment)
}

// DeletePayment handles DELETE /api/payments/:id.
func (h *Handler) DeletePayment(c *gin.Context) {
	if err := h.store.DeletePayment(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "payment not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment"})
		return
	}

	h.refreshPayments(c)
	c.Status(http.StatusNoContent)
}

func (h *Handler) refreshPayments(c *gin.Context) {
	payments, err := h.store.ListPayments(c.Request.Context())
	if err == nil {
		h.state.SetPayments(payments)
	}
}
