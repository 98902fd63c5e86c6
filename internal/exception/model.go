package exception

import (
	"net/http"
	"time"

	"github.com/drivelane/driving-school-backend/internal/pkg/apperror"
	"github.com/drivelane/driving-school-backend/internal/pkg/clock"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "schedule exception not found")
	ErrInvalidDateRange = apperror.New(http.StatusBadRequest, "end date must not be before start date")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrTimesRequired    = apperror.New(http.StatusBadRequest, "partial exceptions require start and end times")
	ErrStartDateInPast  = apperror.New(http.StatusBadRequest, "start date is in the past")
	ErrInvalidType      = apperror.New(http.StatusBadRequest, "invalid exception type")
)

// Type classifies why an instructor is unavailable.
type Type string

const (
	TypeVacation           Type = "vacation"
	TypeSickLeave          Type = "sick_leave"
	TypeHoliday            Type = "holiday"
	TypePersonalLeave      Type = "personal_leave"
	TypeTraining           Type = "training"
	TypeVehicleMaintenance Type = "vehicle_maintenance"
)

// IsValid reports whether t is a known exception type.
func (t Type) IsValid() bool {
	switch t {
	case TypeVacation, TypeSickLeave, TypeHoliday, TypePersonalLeave,
		TypeTraining, TypeVehicleMaintenance:
		return true
	}
	return false
}

// Exception removes availability that the weekly schedule would otherwise
// grant. AllDay exceptions blank whole days; partial ones only the
// [StartTime, EndTime) window on each covered day.
type Exception struct {
	ID           string
	InstructorID string
	Type         Type
	StartDate    time.Time // date, midnight branch-local
	EndDate      time.Time
	AllDay       bool
	StartTime    *string // "HH:MM", required when AllDay is false
	EndTime      *string
	Reason       string
	CreatedAt    time.Time
}

// Validate checks the date/time invariants. When allowPast is false,
// exceptions starting before today are rejected; callers may override
// for backfilling historical records.
func (e *Exception) Validate(today time.Time, allowPast bool) error {
	if !e.Type.IsValid() {
		return ErrInvalidType
	}
	if e.EndDate.Before(e.StartDate) {
		return ErrInvalidDateRange
	}
	if !e.AllDay {
		if e.StartTime == nil || e.EndTime == nil {
			return ErrTimesRequired
		}
		start, err := clock.ParseHHMM(*e.StartTime)
		if err != nil {
			return apperror.Wrap(err, http.StatusBadRequest, "invalid start time")
		}
		end, err := clock.ParseHHMM(*e.EndTime)
		if err != nil {
			return apperror.Wrap(err, http.StatusBadRequest, "invalid end time")
		}
		if start >= end {
			return ErrInvalidTimeRange
		}
	}
	if !allowPast && e.StartDate.Before(clock.DayStart(today)) {
		return ErrStartDateInPast
	}
	return nil
}

// CoversDay reports whether the exception applies on the given day.
func (e *Exception) CoversDay(day time.Time) bool {
	d := clock.DayStart(day)
	return !d.Before(clock.DayStart(e.StartDate)) && !d.After(clock.DayStart(e.EndDate))
}
