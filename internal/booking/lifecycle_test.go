package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, false},
		{StatusInProgress, StatusNoShow, false},
		{StatusInProgress, StatusConfirmed, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusInProgress, false},
		{StatusNoShow, StatusConfirmed, false},
		{StatusNoShow, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTransition(t *testing.T) {
	b := &Booking{Status: StatusConfirmed}

	assert.NoError(t, Transition(b, StatusInProgress))
	assert.Equal(t, StatusInProgress, b.Status)

	err := Transition(b, StatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
	assert.Equal(t, StatusInProgress, b.Status, "failed transition must not change status")

	assert.NoError(t, Transition(b, StatusCompleted))
	assert.Equal(t, StatusCompleted, b.Status)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusConfirmed))
	assert.False(t, IsTerminal(StatusInProgress))
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusNoShow))
}

func TestCreditsToRefund(t *testing.T) {
	start := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	pkg := "pkg-1"
	window := 24 * time.Hour

	funded := &Booking{StartTime: start, UsedCredits: 1, PackageID: &pkg}

	tests := []struct {
		name string
		b    *Booking
		now  time.Time
		want int
	}{
		{
			name: "one minute outside the window refunds",
			b:    funded,
			now:  start.Add(-window - time.Minute),
			want: 1,
		},
		{
			name: "exactly at the window forfeits",
			b:    funded,
			now:  start.Add(-window),
			want: 0,
		},
		{
			name: "one minute inside the window forfeits",
			b:    funded,
			now:  start.Add(-window + time.Minute),
			want: 0,
		},
		{
			name: "payment funded booking never refunds credits",
			b:    &Booking{StartTime: start, UsedCredits: 0, PackageID: nil},
			now:  start.Add(-48 * time.Hour),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CreditsToRefund(tt.b, tt.now, window))
		})
	}
}
