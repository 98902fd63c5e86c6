package workinghours

import (
	"net/http"

	"github.com/drivelane/driving-school-backend/internal/pkg/apperror"
	"github.com/drivelane/driving-school-backend/internal/pkg/clock"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "working hours entry not found")
	ErrInvalidDay       = apperror.New(http.StatusBadRequest, "day of week must be between 0 and 6")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
)

// Entry is one weekly working-hours row for an instructor. Times are
// branch-local wall clock ("HH:MM"); several entries per day are allowed.
type Entry struct {
	ID           string
	InstructorID string
	DayOfWeek    int // 0 = Sunday .. 6 = Saturday
	StartTime    string
	EndTime      string
	IsAvailable  bool
}

// Validate checks day and time-of-day ordering.
func (e *Entry) Validate() error {
	if e.DayOfWeek < 0 || e.DayOfWeek > 6 {
		return ErrInvalidDay
	}
	start, err := clock.ParseHHMM(e.StartTime)
	if err != nil {
		return apperror.Wrap(err, http.StatusBadRequest, "invalid start time")
	}
	end, err := clock.ParseHHMM(e.EndTime)
	if err != nil {
		return apperror.Wrap(err, http.StatusBadRequest, "invalid end time")
	}
	if start >= end {
		return ErrInvalidTimeRange
	}
	return nil
}
