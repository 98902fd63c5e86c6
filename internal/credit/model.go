package credit

import (
	"net/http"
	"time"

	"github.com/drivelane/driving-school-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "credit package not found")
	ErrPackageExpired      = apperror.New(http.StatusConflict, "credit package has expired")
	ErrInsufficientCredits = apperror.New(http.StatusConflict, "not enough credits remaining")
	ErrRefundExceedsUsage  = apperror.New(http.StatusConflict, "refund exceeds consumed credits")
	ErrInvalidAmount       = apperror.New(http.StatusBadRequest, "amount must be positive")
	ErrInvalidTotal        = apperror.New(http.StatusBadRequest, "credits total must be positive")
)

// Status of a user's credit package.
type Status string

const (
	StatusActive   Status = "active"
	StatusDepleted Status = "depleted"
	StatusExpired  Status = "expired"
)

// UserPackage is a purchased bundle of lesson credits. The counts always
// satisfy used + remaining = total.
type UserPackage struct {
	ID               string
	UserID           string
	Name             string
	CreditsTotal     int
	CreditsUsed      int
	CreditsRemaining int
	ExpiresAt        time.Time
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ComputeStatus derives the package status from its counts and expiry.
// Expiry wins over depletion.
func ComputeStatus(creditsRemaining int, expiresAt, now time.Time) Status {
	if !now.Before(expiresAt) {
		return StatusExpired
	}
	if creditsRemaining <= 0 {
		return StatusDepleted
	}
	return StatusActive
}
