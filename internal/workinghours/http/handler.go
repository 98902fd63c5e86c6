package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/drivelane/driving-school-backend/internal/auth"
	"github.com/drivelane/driving-school-backend/internal/pkg/response"
	"github.com/drivelane/driving-school-backend/internal/user"
	"github.com/drivelane/driving-school-backend/internal/workinghours"
)

type Handler struct {
	service workinghours.Service
}

func NewHandler(service workinghours.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateEntryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	available := true
	if body.IsAvailable != nil {
		available = *body.IsAvailable
	}

	entry, err := h.service.Create(c.Request.Context(), workinghours.CreateRequest{
		InstructorID: auth.GetUserID(c),
		DayOfWeek:    body.DayOfWeek,
		StartTime:    body.StartTime,
		EndTime:      body.EndTime,
		IsAvailable:  available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewEntryResponse(entry))
}

func (h *Handler) List(c *gin.Context) {
	instructorID := auth.GetUserID(c)
	if v := c.Query("instructor_id"); v != "" && auth.GetUserRole(c) == string(user.RoleAdmin) {
		instructorID = v
	}

	entries, err := h.service.ListByInstructor(c.Request.Context(), instructorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]EntryResponse, len(entries))
	for i, e := range entries {
		items[i] = NewEntryResponse(e)
	}
	c.JSON(http.StatusOK, gin.H{"working_hours": items})
}

func (h *Handler) Update(c *gin.Context) {
	entry, ok := h.load(c)
	if !ok {
		return
	}

	var body UpdateEntryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), entry.ID, workinghours.UpdateRequest{
		DayOfWeek:   body.DayOfWeek,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
		IsAvailable: body.IsAvailable,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewEntryResponse(updated))
}

func (h *Handler) Delete(c *gin.Context) {
	entry, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), entry.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) load(c *gin.Context) (*workinghours.Entry, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return nil, false
	}

	entry, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}

	if entry.InstructorID != auth.GetUserID(c) && auth.GetUserRole(c) != string(user.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your working hours entry"})
		return nil, false
	}
	return entry, true
}
