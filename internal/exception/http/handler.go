package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/drivelane/driving-school-backend/internal/auth"
	"github.com/drivelane/driving-school-backend/internal/exception"
	"github.com/drivelane/driving-school-backend/internal/pkg/response"
	"github.com/drivelane/driving-school-backend/internal/user"
)

type Handler struct {
	service exception.Service
}

func NewHandler(service exception.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateExceptionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	startDate, err := time.Parse("2006-01-02", body.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse("2006-01-02", body.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
		return
	}

	// Admins may backfill exceptions that started in the past.
	allowPast := auth.GetUserRole(c) == string(user.RoleAdmin)

	e, err := h.service.Create(c.Request.Context(), exception.CreateRequest{
		InstructorID: auth.GetUserID(c),
		Type:         exception.Type(body.Type),
		StartDate:    startDate,
		EndDate:      endDate,
		AllDay:       body.AllDay,
		StartTime:    body.StartTime,
		EndTime:      body.EndTime,
		Reason:       body.Reason,
		AllowPast:    allowPast,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewExceptionResponse(e))
}

func (h *Handler) List(c *gin.Context) {
	instructorID := auth.GetUserID(c)
	if v := c.Query("instructor_id"); v != "" && auth.GetUserRole(c) == string(user.RoleAdmin) {
		instructorID = v
	}

	result, err := h.service.List(c.Request.Context(), instructorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := ListExceptionsResponse{
		Current: make([]ExceptionResponse, len(result.Current)),
		Past:    make([]ExceptionResponse, len(result.Past)),
	}
	for i, e := range result.Current {
		resp.Current[i] = NewExceptionResponse(e)
	}
	for i, e := range result.Past {
		resp.Past[i] = NewExceptionResponse(e)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if e.InstructorID != auth.GetUserID(c) && auth.GetUserRole(c) != string(user.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your exception"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
