package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/drivelane/driving-school-backend/internal/availability"
	"github.com/drivelane/driving-school-backend/internal/pkg/response"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// Resolve answers GET /availability with per-day slot lists for an
// instructor over a date range.
func (h *Handler) Resolve(c *gin.Context) {
	instructorID := c.Query("instructor_id")
	if _, err := uuid.Parse(instructorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid instructor_id"})
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", c.DefaultQuery("to", c.Query("from")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
		return
	}

	duration, err := strconv.Atoi(c.DefaultQuery("duration", "60"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid duration"})
		return
	}
	interval, _ := strconv.Atoi(c.DefaultQuery("interval", "0"))
	includePast := c.Query("include_past") == "true"

	days, err := h.service.Resolve(c.Request.Context(), availability.Query{
		InstructorID:    instructorID,
		From:            from,
		To:              to,
		DurationMinutes: duration,
		IntervalMinutes: interval,
		IncludePast:     includePast,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}
