package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivelane/driving-school-backend/internal/exception"
	"github.com/drivelane/driving-school-backend/internal/template"
	"github.com/drivelane/driving-school-backend/internal/workinghours"
)

type fakeWorkingHours struct {
	entries []*workinghours.Entry
}

func (f *fakeWorkingHours) ListByInstructor(ctx context.Context, instructorID string) ([]*workinghours.Entry, error) {
	return f.entries, nil
}

type fakeTemplates struct {
	active *template.Template
}

func (f *fakeTemplates) GetActiveForDate(ctx context.Context, instructorID string, date time.Time) (*template.Template, error) {
	if f.active == nil {
		return nil, template.ErrNotFound
	}
	return f.active, nil
}

type fakeExceptions struct {
	exceptions []*exception.Exception
}

func (f *fakeExceptions) ListOverlapping(ctx context.Context, instructorID string, from, to time.Time) ([]*exception.Exception, error) {
	return f.exceptions, nil
}

type fakeBusy struct {
	busy []Busy
}

func (f *fakeBusy) ListBusy(ctx context.Context, instructorID string, from, to time.Time) ([]Busy, error) {
	return f.busy, nil
}

func newTestService(wh *fakeWorkingHours, tpl *fakeTemplates, exc *fakeExceptions, busy *fakeBusy, now time.Time) Service {
	return &service{
		workingHours:    wh,
		templates:       tpl,
		exceptions:      exc,
		busy:            busy,
		defaultInterval: 30,
		loc:             time.UTC,
		now:             func() time.Time { return now },
	}
}

// Monday 2026-09-07.
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func TestResolveReproducesAppliedTemplate(t *testing.T) {
	validFrom := monday.AddDate(0, 0, -7)
	appliedAt := validFrom
	tpl := &template.Template{
		ID:           "tpl-1",
		InstructorID: "inst-1",
		Name:         "fall schedule",
		Days: []template.Day{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
		},
		ValidFrom: &validFrom,
		AppliedAt: &appliedAt,
	}

	svc := newTestService(
		&fakeWorkingHours{},
		&fakeTemplates{active: tpl},
		&fakeExceptions{},
		&fakeBusy{},
		monday,
	)

	days, err := svc.Resolve(context.Background(), Query{
		InstructorID:    "inst-1",
		From:            monday,
		To:              monday,
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.Len(t, days, 1)

	wantStarts := []string{"09:00", "09:30", "10:00", "10:30", "11:00"}
	require.Len(t, days[0].Slots, len(wantStarts))
	for i, s := range days[0].Slots {
		assert.Equal(t, wantStarts[i], s.Start.Format("15:04"))
		assert.True(t, s.Available)
	}
}

func TestResolveFallsBackToWorkingHours(t *testing.T) {
	svc := newTestService(
		&fakeWorkingHours{entries: []*workinghours.Entry{
			{InstructorID: "inst-1", DayOfWeek: 1, StartTime: "14:00", EndTime: "16:00", IsAvailable: true},
			{InstructorID: "inst-1", DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00", IsAvailable: false},
			{InstructorID: "inst-1", DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		}},
		&fakeTemplates{},
		&fakeExceptions{},
		&fakeBusy{},
		monday,
	)

	dayCtx, err := svc.DayContextFor(context.Background(), "inst-1", monday)
	require.NoError(t, err)

	// Only the Monday isAvailable row contributes.
	assert.Equal(t, []Range{{840, 960}}, dayCtx.Open)
}

func TestResolveAllDayExceptionBlanksDate(t *testing.T) {
	svc := newTestService(
		&fakeWorkingHours{entries: []*workinghours.Entry{
			{InstructorID: "inst-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		}},
		&fakeTemplates{},
		&fakeExceptions{exceptions: []*exception.Exception{
			{
				InstructorID: "inst-1",
				Type:         exception.TypeVacation,
				StartDate:    monday,
				EndDate:      monday,
				AllDay:       true,
			},
		}},
		&fakeBusy{},
		monday,
	)

	days, err := svc.Resolve(context.Background(), Query{
		InstructorID:    "inst-1",
		From:            monday,
		To:              monday,
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.Len(t, days, 1)

	for _, s := range days[0].Slots {
		assert.False(t, s.Available)
	}
}

func TestResolvePartialExceptionRemovesWindow(t *testing.T) {
	start, end := "10:00", "12:00"
	svc := newTestService(
		&fakeWorkingHours{entries: []*workinghours.Entry{
			{InstructorID: "inst-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		}},
		&fakeTemplates{},
		&fakeExceptions{exceptions: []*exception.Exception{
			{
				InstructorID: "inst-1",
				Type:         exception.TypeTraining,
				StartDate:    monday,
				EndDate:      monday,
				StartTime:    &start,
				EndTime:      &end,
			},
		}},
		&fakeBusy{},
		monday,
	)

	dayCtx, err := svc.DayContextFor(context.Background(), "inst-1", monday)
	require.NoError(t, err)
	assert.Equal(t, []Range{{540, 600}, {720, 1020}}, dayCtx.Remaining())
}

func TestResolveBookedRangesClippedToDay(t *testing.T) {
	svc := newTestService(
		&fakeWorkingHours{entries: []*workinghours.Entry{
			{InstructorID: "inst-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		}},
		&fakeTemplates{},
		&fakeExceptions{},
		&fakeBusy{busy: []Busy{
			{Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)},
		}},
		monday,
	)

	dayCtx, err := svc.DayContextFor(context.Background(), "inst-1", monday)
	require.NoError(t, err)
	assert.Equal(t, []Range{{600, 660}}, dayCtx.Booked)
	assert.False(t, dayCtx.RangeFree(monday.Add(10*time.Hour), monday.Add(11*time.Hour)))
}

func TestResolveValidatesQuery(t *testing.T) {
	svc := newTestService(&fakeWorkingHours{}, &fakeTemplates{}, &fakeExceptions{}, &fakeBusy{}, monday)

	_, err := svc.Resolve(context.Background(), Query{InstructorID: "i", From: monday, To: monday, DurationMinutes: 0})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = svc.Resolve(context.Background(), Query{InstructorID: "i", From: monday, To: monday.AddDate(0, 0, -1), DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.Resolve(context.Background(), Query{InstructorID: "i", From: monday, To: monday.AddDate(0, 0, 90), DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrRangeTooLarge)
}
