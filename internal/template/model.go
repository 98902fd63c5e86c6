package template

import (
	"net/http"
	"sort"
	"time"

	"github.com/drivelane/driving-school-backend/internal/pkg/apperror"
	"github.com/drivelane/driving-school-backend/internal/pkg/clock"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "schedule template not found")
	ErrApplyConflict    = apperror.New(http.StatusConflict, "instructor already has working hours; apply with overwrite to replace them")
	ErrImmutable        = apperror.New(http.StatusConflict, "applied templates cannot be modified")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "template name is required")
	ErrInvalidDay       = apperror.New(http.StatusBadRequest, "day of week must be between 0 and 6")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrEmptyPattern     = apperror.New(http.StatusBadRequest, "template has no working ranges")
	ErrNoSourceDay      = apperror.New(http.StatusBadRequest, "source day has no ranges to copy")
)

// Day is one working range inside a template's week pattern.
type Day struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Template is a reusable weekly working-hours pattern. Drafts are editable;
// once applied a template becomes immutable and its ValidFrom/AppliedAt are set.
type Template struct {
	ID           string
	InstructorID string
	Name         string
	Days         []Day
	ValidFrom    *time.Time
	ValidTo      *time.Time
	AppliedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsApplied reports whether the template has been materialized.
func (t *Template) IsApplied() bool {
	return t.AppliedAt != nil
}

// CoversDate reports whether an applied template is valid on the given date.
func (t *Template) CoversDate(date time.Time) bool {
	if !t.IsApplied() || t.ValidFrom == nil {
		return false
	}
	d := clock.DayStart(date)
	if d.Before(clock.DayStart(*t.ValidFrom)) {
		return false
	}
	if t.ValidTo != nil && d.After(clock.DayStart(*t.ValidTo)) {
		return false
	}
	return true
}

// Validate checks the pattern's days and time ranges.
func (t *Template) Validate() error {
	if t.Name == "" {
		return ErrNameRequired
	}
	if len(t.Days) == 0 {
		return ErrEmptyPattern
	}
	for _, d := range t.Days {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			return ErrInvalidDay
		}
		start, err := clock.ParseHHMM(d.StartTime)
		if err != nil {
			return apperror.Wrap(err, http.StatusBadRequest, "invalid start time")
		}
		end, err := clock.ParseHHMM(d.EndTime)
		if err != nil {
			return apperror.Wrap(err, http.StatusBadRequest, "invalid end time")
		}
		if start >= end {
			return ErrInvalidTimeRange
		}
	}
	return nil
}

// CopyToAllDays duplicates the source day's ranges onto every other day of
// the draft, replacing whatever those days had. Pure in-memory operation;
// nothing is persisted until the draft is saved.
func CopyToAllDays(t *Template, sourceDayOfWeek int) error {
	if sourceDayOfWeek < 0 || sourceDayOfWeek > 6 {
		return ErrInvalidDay
	}

	var source []Day
	for _, d := range t.Days {
		if d.DayOfWeek == sourceDayOfWeek {
			source = append(source, d)
		}
	}
	if len(source) == 0 {
		return ErrNoSourceDay
	}

	days := make([]Day, 0, len(source)*7)
	for dow := 0; dow <= 6; dow++ {
		for _, src := range source {
			days = append(days, Day{
				DayOfWeek: dow,
				StartTime: src.StartTime,
				EndTime:   src.EndTime,
			})
		}
	}
	sort.SliceStable(days, func(i, j int) bool {
		if days[i].DayOfWeek != days[j].DayOfWeek {
			return days[i].DayOfWeek < days[j].DayOfWeek
		}
		return days[i].StartTime < days[j].StartTime
	})

	t.Days = days
	return nil
}
