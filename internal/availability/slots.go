package availability

import (
	"time"

	"courtly/internal/courts"
)

// GenerateSlots walks the venue's operating window on the given day in
// steps of the court's slot granularity and returns the free slots.
//
// A slot is dropped when it overlaps any busy interval or, for today,
// when it has already started. The walk stops once a full slot no longer
// fits before closing, so the last slot always ends at or before close.
func GenerateSlots(court *courts.Court, open, close, now time.Time, busy []Interval) []Slot {
	step := time.Duration(court.SlotMinutes) * time.Minute
	slots := make([]Slot, 0)

	for start := open; !start.Add(step).After(close); start = start.Add(step) {
		end := start.Add(step)

		if !start.After(now) {
			continue
		}

		if overlapsAny(start, end, busy) {
			continue
		}

		slots = append(slots, Slot{
			Start: start,
			End:   end,
			Price: court.PriceFor(start, end),
		})
	}

	return slots
}

func overlapsAny(start, end time.Time, busy []Interval) bool {
	for _, iv := range busy {
		if Overlaps(start, end, iv.Start, iv.End) {
			return true
		}
	}
	return false
}
