package event

import (
	"net/http"
	"time"

	"github.com/drivelane/driving-school-backend/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(http.StatusNotFound, "event not found")

// Record is one persisted booking lifecycle event. FromStatus is empty for
// the creation event.
type Record struct {
	ID         string
	BookingID  string
	FromStatus string
	ToStatus   string
	Actor      string
	OccurredAt time.Time
	CreatedAt  time.Time
}
