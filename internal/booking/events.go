package booking

import "time"

// Event records one lifecycle transition. Create emits it with From empty.
type Event struct {
	BookingID  string
	FromStatus Status
	ToStatus   Status
	Actor      string // user ID that triggered the transition
	OccurredAt time.Time
}

// EventSink consumes lifecycle events. Publishing is fire and forget: the
// sink must not block the transaction that produced the event, and a lost
// event never fails the booking operation.
type EventSink interface {
	Publish(event Event)
}

// NopSink drops events. Useful in tests.
type NopSink struct{}

func (NopSink) Publish(Event) {}
