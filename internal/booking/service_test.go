package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCreateValidation(t *testing.T) {
	// Validation runs before any transaction is opened, so a bare service
	// with no pool is enough here.
	svc := &service{
		logger: zap.NewNop(),
		loc:    time.UTC,
		now:    time.Now,
	}
	pkg := "pkg-1"
	start := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			name: "zero duration",
			req: CreateRequest{
				InstructorID: "i", StudentID: "s", Start: start,
				DurationMinutes: 0, LessonType: LessonStandard, PackageID: &pkg,
			},
			wantErr: ErrInvalidDuration,
		},
		{
			name: "negative duration",
			req: CreateRequest{
				InstructorID: "i", StudentID: "s", Start: start,
				DurationMinutes: -30, LessonType: LessonStandard, PackageID: &pkg,
			},
			wantErr: ErrInvalidDuration,
		},
		{
			name: "unknown lesson type",
			req: CreateRequest{
				InstructorID: "i", StudentID: "s", Start: start,
				DurationMinutes: 60, LessonType: LessonType("karting"), PackageID: &pkg,
			},
			wantErr: ErrInvalidLesson,
		},
		{
			name: "no funding source",
			req: CreateRequest{
				InstructorID: "i", StudentID: "s", Start: start,
				DurationMinutes: 60, LessonType: LessonStandard,
			},
			wantErr: ErrFundingRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateRejectsElapsedStart(t *testing.T) {
	// The guard fires before any transaction is opened.
	now := time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC)
	svc := &service{
		logger: zap.NewNop(),
		loc:    time.UTC,
		now:    func() time.Time { return now },
	}
	pkg := "pkg-1"

	for name, start := range map[string]time.Time{
		"earlier today": now.Add(-2 * time.Hour),
		"just elapsed":  now.Add(-time.Minute),
		"previous day":  now.AddDate(0, 0, -1),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), CreateRequest{
				InstructorID: "i", StudentID: "s", Start: start,
				DurationMinutes: 60, LessonType: LessonStandard, PackageID: &pkg,
			})
			assert.ErrorIs(t, err, ErrSlotUnavailable)
		})
	}
}

func TestCancelResultCreditsForfeited(t *testing.T) {
	pkg := "pkg-1"

	tests := []struct {
		name   string
		result CancelResult
		want   bool
	}{
		{
			name:   "late credit cancellation forfeits",
			result: CancelResult{Booking: &Booking{PackageID: &pkg, UsedCredits: 1}},
			want:   true,
		},
		{
			name:   "refunded cancellation does not",
			result: CancelResult{Booking: &Booking{PackageID: &pkg, UsedCredits: 1}, CreditsRefunded: 1},
		},
		{
			name:   "payment-funded booking has nothing to forfeit",
			result: CancelResult{Booking: &Booking{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.CreditsForfeited())
		})
	}
}

func TestLessonTypeIsValid(t *testing.T) {
	for _, lt := range []LessonType{LessonStandard, LessonHighway, LessonNight, LessonExamPrep, LessonExam} {
		assert.True(t, lt.IsValid(), string(lt))
	}
	assert.False(t, LessonType("").IsValid())
	assert.False(t, LessonType("karting").IsValid())
}
