package http

import (
	"time"

	"github.com/drivelane/driving-school-backend/internal/event"
)

type EventResponse struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id"`
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEventResponse(rec *event.Record) EventResponse {
	return EventResponse{
		ID:         rec.ID,
		BookingID:  rec.BookingID,
		FromStatus: rec.FromStatus,
		ToStatus:   rec.ToStatus,
		Actor:      rec.Actor,
		OccurredAt: rec.OccurredAt,
	}
}
