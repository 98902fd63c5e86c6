package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/drivelane/driving-school-backend/internal/auth"
	"github.com/drivelane/driving-school-backend/internal/booking"
	"github.com/drivelane/driving-school-backend/internal/pkg/response"
	"github.com/drivelane/driving-school-backend/internal/user"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if _, err := uuid.Parse(body.InstructorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid instructor_id"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		StudentID:       auth.GetUserID(c),
		InstructorID:    body.InstructorID,
		Start:           body.Start,
		DurationMinutes: body.DurationMinutes,
		LessonType:      booking.LessonType(body.LessonType),
		PackageID:       body.PackageID,
		PaymentRef:      body.PaymentRef,
		LocationID:      body.LocationID,
		VehicleID:       body.VehicleID,
		Notes:           body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := booking.Filter{
		Status:   booking.Status(c.Query("status")),
		Page:     page,
		PageSize: pageSize,
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end := t.AddDate(0, 0, 1)
			filter.To = &end
		}
	}

	// Non-admins only ever see their own side of the calendar.
	switch auth.GetUserRole(c) {
	case string(user.RoleAdmin):
		filter.InstructorID = c.Query("instructor_id")
		filter.StudentID = c.Query("student_id")
	case string(user.RoleInstructor):
		filter.InstructorID = auth.GetUserID(c)
	default:
		filter.StudentID = auth.GetUserID(c)
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	b, ok := h.load(c, false)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	b, ok := h.load(c, false)
	if !ok {
		return
	}

	result, err := h.service.Cancel(c.Request.Context(), b.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, CancelBookingResponse{
		Booking:          NewBookingResponse(result.Booking),
		CreditsRefunded:  result.CreditsRefunded,
		CreditsForfeited: result.CreditsForfeited(),
	})
}

func (h *Handler) CheckIn(c *gin.Context) {
	h.transition(c, h.service.CheckIn)
}

func (h *Handler) CheckOut(c *gin.Context) {
	h.transition(c, h.service.CheckOut)
}

func (h *Handler) MarkNoShow(c *gin.Context) {
	h.transition(c, h.service.MarkNoShow)
}

func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, id, actor string) (*booking.Booking, error)) {
	b, ok := h.load(c, true)
	if !ok {
		return
	}

	updated, err := op(c.Request.Context(), b.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(updated))
}

// load fetches the booking from the path ID and checks access. With
// instructorOnly set, students are rejected even for their own booking.
func (h *Handler) load(c *gin.Context, instructorOnly bool) (*booking.Booking, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return nil, false
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}

	userID := auth.GetUserID(c)
	role := auth.GetUserRole(c)
	if role == string(user.RoleAdmin) {
		return b, true
	}
	if b.InstructorID == userID {
		return b, true
	}
	if !instructorOnly && b.StudentID == userID {
		return b, true
	}
	c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
	return nil, false
}
