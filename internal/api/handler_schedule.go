package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleet-ops-backend/internal/parse"
	"fleet-ops-backend/internal/schedule"
)

type generateScheduleRequest struct {
	RotationInterval *int  `json:"rotation_interval"`
	ExcludedWeekdays []int `json:"excluded_weekdays"`
}

type updateTodayRequest struct {
	DriverID   string `json:"driver_id" binding:"required"`
	LocationID string `json:"location_id" binding:"required"`
}

// GetSchedule handles GET /api/schedule.
func (h *Handler) GetSchedule(c *gin.Context) {
	c.JSON(http.StatusOK, h.state.Schedule())
}

// GenerateSchedule handles POST /api/schedule/generate. Omitted fields
// fall back to the stored settings row.
func (h *Handler) GenerateSchedule(c *gin.Context) {
	var req generateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := h.state.Settings()

	interval := 1
	if settings != nil && settings.RotationInterval > 0 {
		interval = settings.RotationInterval
	}
	if req.RotationInterval != nil {
		interval = *req.RotationInterval
	}

	var excluded map[time.Weekday]bool
	var err error
	if req.ExcludedWeekdays != nil {
		excluded, err = parse.WeekdaySet(req.ExcludedWeekdays)
	} else if settings != nil {
		excluded, err = parse.ParseWeekdays(settings.ExcludedWeekdays)
	} else {
		excluded = map[time.Weekday]bool{}
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.schedule.Generate(c.Request.Context(), interval, excluded); err != nil {
		if isValidationAbort(err) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.state.Schedule())
}

// UpdateScheduleToday handles PUT /api/schedule/today: overwrite today's
// entry for one driver with a new location. An unknown location id is a
// no-op and reports updated=false.
func (h *Handler) UpdateScheduleToday(c *gin.Context) {
	var req updateTodayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.schedule.UpdateDriverToday(c.Request.Context(), req.DriverID, req.LocationID)
	if err != nil {
		if errors.Is(err, schedule.ErrNoEntryToday) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// ClearSchedule handles DELETE /api/schedule.
func (h *Handler) ClearSchedule(c *gin.Context) {
	if err := h.schedule.Clear(c.Request.Context()); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func isValidationAbort(err error) bool {
	return errors.Is(err, schedule.ErrNoDedicatedDrivers) ||
		errors.Is(err, schedule.ErrNoRotationLocations) ||
		errors.Is(err, schedule.ErrInvalidInterval) ||
		errors.Is(err, schedule.ErrAllWeekdaysExcluded)
}
