package exception

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/drivelane/driving-school-backend/internal/db"
)

var today = time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC)

func TestExceptionValidate(t *testing.T) {
	s, e := "10:00", "12:00"

	tests := []struct {
		name      string
		exception Exception
		allowPast bool
		wantErr   error
	}{
		{
			name: "valid all day",
			exception: Exception{
				Type:      TypeVacation,
				StartDate: today.AddDate(0, 0, 1),
				EndDate:   today.AddDate(0, 0, 5),
				AllDay:    true,
			},
		},
		{
			name: "valid partial",
			exception: Exception{
				Type:      TypeTraining,
				StartDate: today.AddDate(0, 0, 1),
				EndDate:   today.AddDate(0, 0, 1),
				StartTime: &s,
				EndTime:   &e,
			},
		},
		{
			name: "unknown type",
			exception: Exception{
				Type:      Type("sabbatical"),
				StartDate: today,
				EndDate:   today,
				AllDay:    true,
			},
			wantErr: ErrInvalidType,
		},
		{
			name: "end before start",
			exception: Exception{
				Type:      TypeHoliday,
				StartDate: today.AddDate(0, 0, 2),
				EndDate:   today.AddDate(0, 0, 1),
				AllDay:    true,
			},
			wantErr: ErrInvalidDateRange,
		},
		{
			name: "partial without times",
			exception: Exception{
				Type:      TypeSickLeave,
				StartDate: today.AddDate(0, 0, 1),
				EndDate:   today.AddDate(0, 0, 1),
			},
			wantErr: ErrTimesRequired,
		},
		{
			name: "partial with inverted times",
			exception: Exception{
				Type:      TypeSickLeave,
				StartDate: today.AddDate(0, 0, 1),
				EndDate:   today.AddDate(0, 0, 1),
				StartTime: &e,
				EndTime:   &s,
			},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name: "past start rejected",
			exception: Exception{
				Type:      TypePersonalLeave,
				StartDate: today.AddDate(0, 0, -1),
				EndDate:   today,
				AllDay:    true,
			},
			wantErr: ErrStartDateInPast,
		},
		{
			name: "past start allowed for backfill",
			exception: Exception{
				Type:      TypePersonalLeave,
				StartDate: today.AddDate(0, 0, -1),
				EndDate:   today,
				AllDay:    true,
			},
			allowPast: true,
		},
		{
			name: "today is not past",
			exception: Exception{
				Type:      TypeHoliday,
				StartDate: today.Add(-10 * time.Hour), // midnight today
				EndDate:   today,
				AllDay:    true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.exception.Validate(today, tt.allowPast)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCoversDay(t *testing.T) {
	e := Exception{
		StartDate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, e.CoversDay(time.Date(2026, 9, 7, 15, 0, 0, 0, time.UTC)))
	assert.True(t, e.CoversDay(time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)))
	assert.False(t, e.CoversDay(time.Date(2026, 9, 6, 23, 0, 0, 0, time.UTC)))
	assert.False(t, e.CoversDay(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)))
}

type fakeRepository struct {
	exceptions []*Exception
}

func (f *fakeRepository) Create(ctx context.Context, e *Exception) error {
	e.ID = "exc-1"
	f.exceptions = append(f.exceptions, e)
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id string) (*Exception, error) {
	for _, e := range f.exceptions {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepository) ListOverlapping(ctx context.Context, instructorID string, from, to time.Time) ([]*Exception, error) {
	return f.exceptions, nil
}

func (f *fakeRepository) ListByInstructor(ctx context.Context, instructorID string) ([]*Exception, error) {
	return f.exceptions, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeRepository) WithTx(q db.Querier) Repository { return f }

func TestListPartitionsCurrentAndPast(t *testing.T) {
	repo := &fakeRepository{exceptions: []*Exception{
		{ID: "past", EndDate: today.AddDate(0, 0, -1)},
		{ID: "ends-today", EndDate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)},
		{ID: "future", EndDate: today.AddDate(0, 0, 3)},
	}}
	svc := &service{
		repo:   repo,
		logger: zap.NewNop(),
		now:    func() time.Time { return today },
	}

	result, err := svc.List(context.Background(), "inst-1")
	require.NoError(t, err)

	require.Len(t, result.Past, 1)
	assert.Equal(t, "past", result.Past[0].ID)

	require.Len(t, result.Current, 2)
	assert.Equal(t, "ends-today", result.Current[0].ID)
	assert.Equal(t, "future", result.Current[1].ID)
}
