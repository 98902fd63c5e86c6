package vehicle

import (
	"net/http"
	"time"

	"github.com/drivelane/driving-school-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "vehicle not found")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "vehicle name is required")
	ErrInvalidTransmission = apperror.New(http.StatusBadRequest, "invalid transmission type")
)

// Transmission is the gearbox type of a training vehicle.
type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
)

// IsValid reports whether t is a known transmission type.
func (t Transmission) IsValid() bool {
	return t == TransmissionManual || t == TransmissionAutomatic
}

// Vehicle is a training car assigned to a branch.
type Vehicle struct {
	ID           string
	LocationID   string
	Name         string
	Plate        string
	Transmission Transmission
	Active       bool
	CreatedAt    time.Time
}

// Filter defines parameters for listing vehicles.
type Filter struct {
	LocationID string
	Active     *bool
	Page       int
	PageSize   int
}
