package http

import (
	"time"

	"github.com/drivelane/driving-school-backend/internal/location"
)

type CreateLocationRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Active  *bool  `json:"active"`
}

type UpdateLocationRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Active  *bool   `json:"active"`
}

type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewLocationResponse(l *location.Location) LocationResponse {
	return LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Address:   l.Address,
		Phone:     l.Phone,
		Active:    l.Active,
		CreatedAt: l.CreatedAt,
	}
}

// LocationTag is the short branch reference embedded in other responses.
type LocationTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
