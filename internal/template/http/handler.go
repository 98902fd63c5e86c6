package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/drivelane/driving-school-backend/internal/auth"
	"github.com/drivelane/driving-school-backend/internal/pkg/response"
	"github.com/drivelane/driving-school-backend/internal/template"
	"github.com/drivelane/driving-school-backend/internal/user"
)

type Handler struct {
	service template.Service
}

func NewHandler(service template.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateTemplateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	t, err := h.service.Create(c.Request.Context(), template.CreateRequest{
		InstructorID: auth.GetUserID(c),
		Name:         body.Name,
		Days:         toDays(body.Days),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewTemplateResponse(t))
}

func (h *Handler) List(c *gin.Context) {
	instructorID := auth.GetUserID(c)
	if v := c.Query("instructor_id"); v != "" && auth.GetUserRole(c) == string(user.RoleAdmin) {
		instructorID = v
	}

	templates, err := h.service.ListByInstructor(c.Request.Context(), instructorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]TemplateResponse, len(templates))
	for i, t := range templates {
		items[i] = NewTemplateResponse(t)
	}
	c.JSON(http.StatusOK, gin.H{"templates": items})
}

func (h *Handler) Get(c *gin.Context) {
	t, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, NewTemplateResponse(t))
}

func (h *Handler) Update(c *gin.Context) {
	t, ok := h.load(c)
	if !ok {
		return
	}

	var body UpdateTemplateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), t.ID, template.UpdateRequest{
		Name: body.Name,
		Days: toDays(body.Days),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTemplateResponse(updated))
}

func (h *Handler) Delete(c *gin.Context) {
	t, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), t.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Apply(c *gin.Context) {
	t, ok := h.load(c)
	if !ok {
		return
	}

	var body ApplyTemplateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	effectiveFrom, err := time.Parse("2006-01-02", body.EffectiveFrom)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid effective_from date, expected YYYY-MM-DD"})
		return
	}

	applied, err := h.service.Apply(c.Request.Context(), template.ApplyRequest{
		TemplateID:        t.ID,
		EffectiveFrom:     effectiveFrom,
		OverwriteExisting: body.OverwriteExisting,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTemplateResponse(applied))
}

// CopyDay replicates one day's ranges across the whole week of a draft.
func (h *Handler) CopyDay(c *gin.Context) {
	t, ok := h.load(c)
	if !ok {
		return
	}

	var body CopyDayRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := template.CopyToAllDays(t, body.SourceDayOfWeek); err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), t.ID, template.UpdateRequest{Days: t.Days})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTemplateResponse(updated))
}

// load fetches the template from the path ID and checks that the caller
// owns it or is an admin. Writes the error response itself on failure.
func (h *Handler) load(c *gin.Context) (*template.Template, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return nil, false
	}

	t, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}

	if t.InstructorID != auth.GetUserID(c) && auth.GetUserRole(c) != string(user.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your template"})
		return nil, false
	}
	return t, true
}
