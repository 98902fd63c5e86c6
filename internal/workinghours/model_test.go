package workinghours

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr error
	}{
		{
			name:  "valid entry",
			entry: Entry{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		},
		{
			name:    "day too large",
			entry:   Entry{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"},
			wantErr: ErrInvalidDay,
		},
		{
			name:    "negative day",
			entry:   Entry{DayOfWeek: -1, StartTime: "09:00", EndTime: "17:00"},
			wantErr: ErrInvalidDay,
		},
		{
			name:    "start equals end",
			entry:   Entry{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "start after end",
			entry:   Entry{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"},
			wantErr: ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("bad time strings", func(t *testing.T) {
		assert.Error(t, (&Entry{DayOfWeek: 1, StartTime: "nine", EndTime: "17:00"}).Validate())
		assert.Error(t, (&Entry{DayOfWeek: 1, StartTime: "09:00", EndTime: "25:00"}).Validate())
	})
}
