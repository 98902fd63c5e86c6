package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHHMM(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"09:00:00", 540, false}, // time columns scan with seconds
		{"24:00", 0, true},
		{"9am", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHHMM(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FormatMinutes(0))
	assert.Equal(t, "09:05", FormatMinutes(545))
	assert.Equal(t, "23:59", FormatMinutes(1439))
}

func TestDayStartAndAtMinutes(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	instant := time.Date(2026, 9, 7, 15, 42, 13, 0, loc)
	start := DayStart(instant)

	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 9, 7, 9, 30, 0, 0, loc), AtMinutes(instant, 570))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 9, 7, 23, 0, 0, 0, time.UTC)
	b := time.Date(2026, 9, 7, 1, 0, 0, 0, time.UTC)
	c := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, c))

	// Comparison happens in the first argument's location.
	berlin, _ := time.LoadLocation("Europe/Berlin")
	utcLate := time.Date(2026, 9, 7, 23, 30, 0, 0, time.UTC)
	assert.False(t, SameDay(time.Date(2026, 9, 7, 12, 0, 0, 0, berlin), utcLate))
}
