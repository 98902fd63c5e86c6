package http

import (
	"time"

	"github.com/drivelane/driving-school-backend/internal/credit"
)

type GrantPackageRequest struct {
	UserID       string    `json:"user_id" binding:"required"`
	Name         string    `json:"name" binding:"required"`
	CreditsTotal int       `json:"credits_total" binding:"required"`
	ExpiresAt    time.Time `json:"expires_at" binding:"required"`
}

type PackageResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	CreditsTotal     int       `json:"credits_total"`
	CreditsUsed      int       `json:"credits_used"`
	CreditsRemaining int       `json:"credits_remaining"`
	ExpiresAt        time.Time `json:"expires_at"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewPackageResponse(p *credit.UserPackage) PackageResponse {
	return PackageResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		Name:             p.Name,
		CreditsTotal:     p.CreditsTotal,
		CreditsUsed:      p.CreditsUsed,
		CreditsRemaining: p.CreditsRemaining,
		ExpiresAt:        p.ExpiresAt,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
	}
}
