package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleet-ops-backend/internal/model"
	"fleet-ops-backend/internal/parse"
)

type settingsRequest struct {
	CompanyName      string `json:"company_name"`
	CurrencyCode     string `json:"currency_code"`
	RotationInterval int    `json:"rotation_interval" binding:"required,gt=0"`
	ExcludedWeekdays []int  `json:"excluded_weekdays"`
	Timezone         string `json:"timezone"`
}

// GetSettings handles GET /api/settings. When no row is stored yet the
// defaults are returned.
func (h *Handler) GetSettings(c *gin.Context) {
	settings := h.state.Settings()
	if settings == nil {
		settings = &model.Setting{CurrencyCode: "USD", RotationInterval: 1}
	}
	c.JSON(http.StatusOK, settings)
}

// PutSettings handles PUT /api/settings: upserts the single settings row.
func (h *Handler) PutSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	excluded, err := parse.WeekdaySet(req.ExcludedWeekdays)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setting := model.Setting{
		CompanyName:      req.CompanyName,
		CurrencyCode:     req.CurrencyCode,
		RotationInterval: req.RotationInterval,
		ExcludedWeekdays: parse.FormatWeekdays(excluded),
		Timezone:         req.Timezone,
	}
	if setting.CurrencyCode == "" {
		setting.CurrencyCode = "USD"
	}
	if existing := h.state.Settings(); existing != nil {
		setting.ID = existing.ID
	} else {
		setting.ID = uuid.NewString()
	}

	if err := h.store.SaveSettings(c.Request.Context(), &setting); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	// Read-after-write so server-side defaults land in the snapshot.
	fresh, err := h.store.GetSettings(c.Request.Context())
	if err == nil && fresh != nil {
		h.state.SetSettings(fresh)
		c.JSON(http.StatusOK, fresh)
		return
	}
	h.state.SetSettings(&setting)
	c.JSON(http.StatusOK, setting)
}
