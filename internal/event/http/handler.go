package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/drivelane/driving-school-backend/internal/event"
	"github.com/drivelane/driving-school-backend/internal/pkg/response"
)

type Handler struct {
	repo event.Repository
}

func NewHandler(repo event.Repository) *Handler {
	return &Handler{repo: repo}
}

// ListByBooking answers GET /bookings/:id/events. Admin only; the history
// includes actor IDs across users.
func (h *Handler) ListByBooking(c *gin.Context) {
	bookingID := c.Param("id")
	if _, err := uuid.Parse(bookingID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	records, err := h.repo.ListByBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]EventResponse, len(records))
	for i, rec := range records {
		items[i] = NewEventResponse(rec)
	}
	c.JSON(http.StatusOK, gin.H{"events": items})
}
