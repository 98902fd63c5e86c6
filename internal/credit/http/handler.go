package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/drivelane/driving-school-backend/internal/auth"
	"github.com/drivelane/driving-school-backend/internal/credit"
	"github.com/drivelane/driving-school-backend/internal/pkg/response"
	"github.com/drivelane/driving-school-backend/internal/user"
)

type Handler struct {
	ledger credit.Ledger
}

func NewHandler(ledger credit.Ledger) *Handler {
	return &Handler{ledger: ledger}
}

// Grant creates a new credit package for a student. Admin only.
func (h *Handler) Grant(c *gin.Context) {
	var body GrantPackageRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.ledger.Create(c.Request.Context(), credit.CreateRequest{
		UserID:       body.UserID,
		Name:         body.Name,
		CreditsTotal: body.CreditsTotal,
		ExpiresAt:    body.ExpiresAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPackageResponse(p))
}

// ListMine returns the caller's own packages.
func (h *Handler) ListMine(c *gin.Context) {
	packages, err := h.ledger.ListByUser(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PackageResponse, len(packages))
	for i, p := range packages {
		items[i] = NewPackageResponse(p)
	}
	c.JSON(http.StatusOK, gin.H{"packages": items})
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	p, err := h.ledger.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if p.UserID != auth.GetUserID(c) && auth.GetUserRole(c) != string(user.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your package"})
		return
	}
	c.JSON(http.StatusOK, NewPackageResponse(p))
}
