package booking

import (
	"net/http"

	"github.com/drivelane/driving-school-backend/internal/pkg/apperror"
)

var ErrInvalidStateTransition = apperror.New(http.StatusConflict, "invalid booking state transition")

// transitions lists every legal status change. Completed, cancelled and
// no_show are terminal.
var transitions = map[Status][]Status{
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition validates and applies a status change on the booking.
func Transition(b *Booking, to Status) error {
	if !CanTransition(b.Status, to) {
		return ErrInvalidStateTransition
	}
	b.Status = to
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}
