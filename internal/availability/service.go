package availability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/drivelane/driving-school-backend/internal/exception"
	"github.com/drivelane/driving-school-backend/internal/pkg/apperror"
	"github.com/drivelane/driving-school-backend/internal/pkg/clock"
	"github.com/drivelane/driving-school-backend/internal/template"
	"github.com/drivelane/driving-school-backend/internal/workinghours"
)

var (
	ErrInvalidRange    = apperror.New(http.StatusBadRequest, "from date must not be after to date")
	ErrRangeTooLarge   = apperror.New(http.StatusBadRequest, "date range exceeds the maximum of 62 days")
	ErrInvalidDuration = apperror.New(http.StatusBadRequest, "duration must be a positive number of minutes")
)

// maxRangeDays caps a single resolution request at roughly two months.
const maxRangeDays = 62

// Busy is an occupied time range taken by a confirmed or in-progress booking.
type Busy struct {
	Start time.Time
	End   time.Time
}

// WorkingHoursSource supplies the instructor's weekly schedule rows.
type WorkingHoursSource interface {
	ListByInstructor(ctx context.Context, instructorID string) ([]*workinghours.Entry, error)
}

// TemplateSource supplies the applied template covering a date, if any.
type TemplateSource interface {
	GetActiveForDate(ctx context.Context, instructorID string, date time.Time) (*template.Template, error)
}

// ExceptionSource supplies exceptions intersecting a date range.
type ExceptionSource interface {
	ListOverlapping(ctx context.Context, instructorID string, from, to time.Time) ([]*exception.Exception, error)
}

// BusySource supplies booked ranges intersecting a time range.
type BusySource interface {
	ListBusy(ctx context.Context, instructorID string, from, to time.Time) ([]Busy, error)
}

// Query describes one availability resolution request.
type Query struct {
	InstructorID    string
	From            time.Time
	To              time.Time
	DurationMinutes int
	IntervalMinutes int // 0 uses the service default
	IncludePast     bool
}

// DaySlots is the resolved slot list for one day.
type DaySlots struct {
	Date  time.Time `json:"date"`
	Slots []Slot    `json:"slots"`
}

type Service interface {
	// Resolve evaluates availability per day over the query's date range.
	Resolve(ctx context.Context, q Query) ([]DaySlots, error)
	// DayContextFor assembles the interval context for a single
	// instructor-day. Callers holding a transaction pass tx-bound sources
	// via WithSources.
	DayContextFor(ctx context.Context, instructorID string, day time.Time) (*DayContext, error)
	// WithSources returns a Service reading from the given sources,
	// typically transaction-bound repositories.
	WithSources(wh WorkingHoursSource, tpl TemplateSource, exc ExceptionSource, busy BusySource) Service
}

type service struct {
	workingHours    WorkingHoursSource
	templates       TemplateSource
	exceptions      ExceptionSource
	busy            BusySource
	defaultInterval int
	loc             *time.Location
	now             func() time.Time
}

func NewService(
	wh WorkingHoursSource,
	tpl TemplateSource,
	exc ExceptionSource,
	busy BusySource,
	defaultIntervalMinutes int,
	loc *time.Location,
) Service {
	return &service{
		workingHours:    wh,
		templates:       tpl,
		exceptions:      exc,
		busy:            busy,
		defaultInterval: defaultIntervalMinutes,
		loc:             loc,
		now:             time.Now,
	}
}

func (s *service) WithSources(wh WorkingHoursSource, tpl TemplateSource, exc ExceptionSource, busy BusySource) Service {
	return &service{
		workingHours:    wh,
		templates:       tpl,
		exceptions:      exc,
		busy:            busy,
		defaultInterval: s.defaultInterval,
		loc:             s.loc,
		now:             s.now,
	}
}

func (s *service) Resolve(ctx context.Context, q Query) ([]DaySlots, error) {
	if q.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	interval := q.IntervalMinutes
	if interval <= 0 {
		interval = s.defaultInterval
	}

	from := clock.DayStart(q.From.In(s.loc))
	to := clock.DayStart(q.To.In(s.loc))
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	if int(to.Sub(from).Hours()/24) >= maxRangeDays {
		return nil, ErrRangeTooLarge
	}

	now := s.now().In(s.loc)
	var result []DaySlots
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dayCtx, err := s.DayContextFor(ctx, q.InstructorID, day)
		if err != nil {
			return nil, err
		}
		result = append(result, DaySlots{
			Date:  day,
			Slots: dayCtx.Slots(q.DurationMinutes, interval, now, q.IncludePast),
		})
	}
	return result, nil
}

func (s *service) DayContextFor(ctx context.Context, instructorID string, day time.Time) (*DayContext, error) {
	day = clock.DayStart(day.In(s.loc))

	open, err := s.openRanges(ctx, instructorID, day)
	if err != nil {
		return nil, err
	}

	exceptions, err := s.exceptionRanges(ctx, instructorID, day)
	if err != nil {
		return nil, err
	}

	booked, err := s.bookedRanges(ctx, instructorID, day)
	if err != nil {
		return nil, err
	}

	return &DayContext{
		Day:        day,
		Open:       open,
		Exceptions: exceptions,
		Booked:     booked,
	}, nil
}

// openRanges determines the day's base schedule. The most recently applied
// template covering the date wins; without one the instructor's plain
// working-hours rows apply.
func (s *service) openRanges(ctx context.Context, instructorID string, day time.Time) ([]Range, error) {
	dow := int(day.Weekday())

	tpl, err := s.templates.GetActiveForDate(ctx, instructorID, day)
	switch {
	case err == nil:
		var open []Range
		for _, d := range tpl.Days {
			if d.DayOfWeek != dow {
				continue
			}
			r, err := parseRange(d.StartTime, d.EndTime)
			if err != nil {
				return nil, err
			}
			open = append(open, r)
		}
		return Merge(open), nil
	case errors.Is(err, template.ErrNotFound):
		// fall through to working hours
	default:
		return nil, err
	}

	entries, err := s.workingHours.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	var open []Range
	for _, e := range entries {
		if e.DayOfWeek != dow || !e.IsAvailable {
			continue
		}
		r, err := parseRange(e.StartTime, e.EndTime)
		if err != nil {
			return nil, err
		}
		open = append(open, r)
	}
	return Merge(open), nil
}

func (s *service) exceptionRanges(ctx context.Context, instructorID string, day time.Time) ([]Range, error) {
	exceptions, err := s.exceptions.ListOverlapping(ctx, instructorID, day, day)
	if err != nil {
		return nil, err
	}

	var removed []Range
	for _, e := range exceptions {
		if !e.CoversDay(day) {
			continue
		}
		if e.AllDay || e.StartTime == nil || e.EndTime == nil {
			removed = append(removed, Range{Start: 0, End: clock.MinutesPerDay})
			continue
		}
		r, err := parseRange(*e.StartTime, *e.EndTime)
		if err != nil {
			return nil, err
		}
		removed = append(removed, r)
	}
	return Merge(removed), nil
}

func (s *service) bookedRanges(ctx context.Context, instructorID string, day time.Time) ([]Range, error) {
	dayEnd := day.AddDate(0, 0, 1)
	busy, err := s.busy.ListBusy(ctx, instructorID, day, dayEnd)
	if err != nil {
		return nil, err
	}

	var booked []Range
	for _, b := range busy {
		start := minutesInto(day, b.Start)
		end := minutesInto(day, b.End)
		if start < 0 {
			start = 0
		}
		if end > clock.MinutesPerDay {
			end = clock.MinutesPerDay
		}
		if start < end {
			booked = append(booked, Range{Start: start, End: end})
		}
	}
	return Merge(booked), nil
}

func parseRange(startTime, endTime string) (Range, error) {
	start, err := clock.ParseHHMM(startTime)
	if err != nil {
		return Range{}, err
	}
	end, err := clock.ParseHHMM(endTime)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: start, End: end}, nil
}
