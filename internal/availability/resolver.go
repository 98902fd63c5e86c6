package availability

import (
	"sort"
	"time"

	"github.com/drivelane/driving-school-backend/internal/pkg/clock"
)

// Block reasons attached to unavailable slots.
const (
	ReasonBooked    = "booked"
	ReasonException = "exception"
	ReasonPast      = "past"
)

// Range is a half-open [Start, End) interval in minutes since midnight.
type Range struct {
	Start int
	End   int
}

func (r Range) valid() bool {
	return r.Start < r.End
}

// Contains reports whether [start, end) lies entirely inside r.
func (r Range) Contains(start, end int) bool {
	return r.Start <= start && end <= r.End
}

// Overlaps reports whether [start, end) intersects r.
func (r Range) Overlaps(start, end int) bool {
	return start < r.End && r.Start < end
}

// Merge sorts ranges and coalesces overlapping or touching ones. Invalid
// (empty or inverted) ranges are dropped. The input slice is not modified.
func Merge(ranges []Range) []Range {
	var rs []Range
	for _, r := range ranges {
		if r.valid() {
			rs = append(rs, r)
		}
	}
	if len(rs) == 0 {
		return nil
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].Start < rs[j].Start })

	merged := []Range{rs[0]}
	for _, r := range rs[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// Subtract removes every removal interval from the base intervals and
// returns what is left, merged and ordered.
func Subtract(base, removals []Range) []Range {
	base = Merge(base)
	removals = Merge(removals)

	var out []Range
	for _, b := range base {
		segments := []Range{b}
		for _, rm := range removals {
			var next []Range
			for _, seg := range segments {
				if !rm.Overlaps(seg.Start, seg.End) {
					next = append(next, seg)
					continue
				}
				if rm.Start > seg.Start {
					next = append(next, Range{Start: seg.Start, End: rm.Start})
				}
				if rm.End < seg.End {
					next = append(next, Range{Start: rm.End, End: seg.End})
				}
			}
			segments = next
		}
		out = append(out, segments...)
	}
	return Merge(out)
}

// Slot is one evaluated booking candidate.
type Slot struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Available   bool      `json:"available"`
	BlockReason string    `json:"block_reason,omitempty"`
}

// DayContext holds everything needed to resolve one instructor-day. It is
// a value assembled from storage once and then queried without further IO,
// so concurrent resolution needs no locking.
type DayContext struct {
	Day        time.Time // midnight, branch-local
	Open       []Range   // base open ranges from the weekly schedule
	Exceptions []Range   // removed by schedule exceptions
	Booked     []Range   // removed by confirmed or in-progress bookings
}

// Remaining returns the open ranges with exceptions and bookings subtracted.
func (d *DayContext) Remaining() []Range {
	removals := make([]Range, 0, len(d.Exceptions)+len(d.Booked))
	removals = append(removals, d.Exceptions...)
	removals = append(removals, d.Booked...)
	return Subtract(d.Open, removals)
}

// Slots enumerates candidates at interval steps inside the day's base open
// ranges and flags each one. A candidate is available only when its whole
// [start, start+duration) window fits inside a single remaining range.
// Candidates starting before now are dropped unless includePast is set, in
// which case they are kept but flagged unavailable.
func (d *DayContext) Slots(durationMinutes, intervalMinutes int, now time.Time, includePast bool) []Slot {
	if durationMinutes <= 0 || intervalMinutes <= 0 {
		return nil
	}

	remaining := d.Remaining()
	var slots []Slot
	for _, open := range Merge(d.Open) {
		for start := open.Start; start+durationMinutes <= open.End; start += intervalMinutes {
			end := start + durationMinutes
			slot := Slot{
				Start: clock.AtMinutes(d.Day, start),
				End:   clock.AtMinutes(d.Day, end),
			}

			if slot.Start.Before(now) {
				if !includePast {
					continue
				}
				slot.BlockReason = ReasonPast
				slots = append(slots, slot)
				continue
			}

			if fitsAny(remaining, start, end) {
				slot.Available = true
			} else {
				slot.BlockReason = d.blockReason(start, end)
			}
			slots = append(slots, slot)
		}
	}
	return slots
}

// RangeFree reports whether the exact [start, end) window is fully open
// once exceptions and bookings are subtracted. Both times must fall on
// this context's day.
func (d *DayContext) RangeFree(start, end time.Time) bool {
	if !clock.SameDay(start, d.Day) {
		return false
	}
	s := minutesInto(d.Day, start)
	e := minutesInto(d.Day, end)
	if s >= e {
		return false
	}
	return fitsAny(d.Remaining(), s, e)
}

func (d *DayContext) blockReason(start, end int) string {
	for _, r := range Merge(d.Exceptions) {
		if r.Overlaps(start, end) {
			return ReasonException
		}
	}
	for _, r := range Merge(d.Booked) {
		if r.Overlaps(start, end) {
			return ReasonBooked
		}
	}
	return ReasonBooked
}

func fitsAny(ranges []Range, start, end int) bool {
	for _, r := range ranges {
		if r.Contains(start, end) {
			return true
		}
	}
	return false
}

func minutesInto(day, t time.Time) int {
	return int(t.Sub(day) / time.Minute)
}
