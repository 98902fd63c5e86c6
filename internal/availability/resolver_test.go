package availability

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name   string
		ranges []Range
		want   []Range
	}{
		{
			name:   "empty input",
			ranges: nil,
			want:   nil,
		},
		{
			name:   "disjoint stay apart",
			ranges: []Range{{540, 600}, {660, 720}},
			want:   []Range{{540, 600}, {660, 720}},
		},
		{
			name:   "overlapping coalesce",
			ranges: []Range{{540, 630}, {600, 720}},
			want:   []Range{{540, 720}},
		},
		{
			name:   "touching coalesce",
			ranges: []Range{{540, 600}, {600, 660}},
			want:   []Range{{540, 660}},
		},
		{
			name:   "unsorted input",
			ranges: []Range{{660, 720}, {540, 600}},
			want:   []Range{{540, 600}, {660, 720}},
		},
		{
			name:   "inverted dropped",
			ranges: []Range{{600, 540}, {540, 600}},
			want:   []Range{{540, 600}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.ranges)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name     string
		base     []Range
		removals []Range
		want     []Range
	}{
		{
			name:     "removal in the middle splits",
			base:     []Range{{540, 720}},
			removals: []Range{{600, 660}},
			want:     []Range{{540, 600}, {660, 720}},
		},
		{
			name:     "removal covering all empties",
			base:     []Range{{540, 720}},
			removals: []Range{{0, 1440}},
			want:     nil,
		},
		{
			name:     "removal clipping the start",
			base:     []Range{{540, 720}},
			removals: []Range{{480, 600}},
			want:     []Range{{600, 720}},
		},
		{
			name:     "removal clipping the end",
			base:     []Range{{540, 720}},
			removals: []Range{{660, 780}},
			want:     []Range{{540, 660}},
		},
		{
			name:     "no overlap leaves base",
			base:     []Range{{540, 720}},
			removals: []Range{{720, 780}},
			want:     []Range{{540, 720}},
		},
		{
			name:     "multiple removals",
			base:     []Range{{480, 1080}},
			removals: []Range{{540, 600}, {720, 780}},
			want:     []Range{{480, 540}, {600, 720}, {780, 1080}},
		},
		{
			name:     "overlapping removals union",
			base:     []Range{{480, 1080}},
			removals: []Range{{540, 660}, {600, 720}},
			want:     []Range{{480, 540}, {720, 1080}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subtract(tt.base, tt.removals)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Subtract() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlotsBoundaryExclusion(t *testing.T) {
	// Monday 09:00-12:00 open, 60-minute lessons at 30-minute steps:
	// starts 09:00 through 11:00 fit, 11:30 would end past close.
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	ctx := &DayContext{
		Day:  day,
		Open: []Range{{540, 720}},
	}

	slots := ctx.Slots(60, 30, day, false)

	wantStarts := []string{"09:00", "09:30", "10:00", "10:30", "11:00"}
	assert.Len(t, slots, len(wantStarts))
	for i, s := range slots {
		assert.Equal(t, wantStarts[i], s.Start.Format("15:04"))
		assert.True(t, s.Available, "slot %s should be available", wantStarts[i])
		assert.Equal(t, s.Start.Add(60*time.Minute), s.End)
	}
}

func TestSlotsBookedOverlapNeverAvailable(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	ctx := &DayContext{
		Day:    day,
		Open:   []Range{{540, 720}},
		Booked: []Range{{600, 660}}, // 10:00-11:00 taken
	}

	slots := ctx.Slots(60, 30, day, false)

	for _, s := range slots {
		overlaps := s.Start.Before(day.Add(11*time.Hour)) && s.End.After(day.Add(10*time.Hour))
		if overlaps {
			assert.False(t, s.Available, "slot %s overlaps a booking", s.Start.Format("15:04"))
			assert.Equal(t, ReasonBooked, s.BlockReason)
		} else {
			assert.True(t, s.Available, "slot %s should be free", s.Start.Format("15:04"))
		}
	}
}

func TestSlotsStraddleRemovedRange(t *testing.T) {
	// A 60-minute candidate at 09:30 straddles the 10:00-10:30 removal even
	// though both of its halves are open.
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	ctx := &DayContext{
		Day:    day,
		Open:   []Range{{540, 720}},
		Booked: []Range{{600, 630}},
	}

	slots := ctx.Slots(60, 30, day, false)
	byStart := map[string]Slot{}
	for _, s := range slots {
		byStart[s.Start.Format("15:04")] = s
	}

	assert.False(t, byStart["09:30"].Available)
	assert.False(t, byStart["10:00"].Available)
	assert.True(t, byStart["10:30"].Available)
	assert.True(t, byStart["09:00"].Available)
}

func TestSlotsAllDayExceptionBlanksDay(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	ctx := &DayContext{
		Day:        day,
		Open:       []Range{{540, 720}},
		Exceptions: []Range{{0, 1440}},
	}

	slots := ctx.Slots(60, 30, day, false)

	for _, s := range slots {
		assert.False(t, s.Available)
		assert.Equal(t, ReasonException, s.BlockReason)
	}
	assert.NotEmpty(t, slots, "candidates are still listed, just blocked")
}

func TestSlotsFullyBlockedDayIsEmptyNotError(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	ctx := &DayContext{Day: day}

	assert.Empty(t, ctx.Slots(60, 30, day, false))
	assert.Empty(t, ctx.Remaining())
}

func TestSlotsPastFiltering(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := day.Add(10*time.Hour + 15*time.Minute) // 10:15
	ctx := &DayContext{
		Day:  day,
		Open: []Range{{540, 720}},
	}

	dropped := ctx.Slots(60, 30, now, false)
	for _, s := range dropped {
		assert.False(t, s.Start.Before(now), "past starts must be dropped")
	}

	kept := ctx.Slots(60, 30, now, true)
	assert.Greater(t, len(kept), len(dropped))
	for _, s := range kept {
		if s.Start.Before(now) {
			assert.False(t, s.Available)
			assert.Equal(t, ReasonPast, s.BlockReason)
		}
	}
}

func TestRangeFree(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	ctx := &DayContext{
		Day:    day,
		Open:   []Range{{540, 720}},
		Booked: []Range{{600, 660}},
	}

	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	assert.True(t, ctx.RangeFree(at(9, 0), at(10, 0)))
	assert.True(t, ctx.RangeFree(at(11, 0), at(12, 0)))
	assert.False(t, ctx.RangeFree(at(9, 30), at(10, 30)), "overlaps booking")
	assert.False(t, ctx.RangeFree(at(11, 30), at(12, 30)), "runs past closing")
	assert.False(t, ctx.RangeFree(at(8, 0), at(9, 0)), "before opening")
	assert.False(t, ctx.RangeFree(at(10, 0), at(10, 0)), "empty range")
	assert.False(t, ctx.RangeFree(at(9, 0).AddDate(0, 0, 1), at(10, 0).AddDate(0, 0, 1)), "different day")
}
