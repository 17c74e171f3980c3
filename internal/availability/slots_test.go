package availability

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"courtly/internal/courts"
)

func testCourt(slotMinutes int, rate string) *courts.Court {
	hourly, _ := decimal.NewFromString(rate)
	return &courts.Court{
		Name:        "Cancha 1",
		Sport:       courts.SportFootball,
		HourlyRate:  hourly,
		SlotMinutes: slotMinutes,
		Active:      true,
	}
}

func day(hour, min int) time.Time {
	return time.Date(2026, 9, 14, hour, min, 0, 0, time.UTC)
}

func TestGenerateSlotsFillsWindow(t *testing.T) {
	court := testCourt(60, "12000")
	open, close := day(8, 0), day(23, 0)
	now := day(0, 0)

	slots := GenerateSlots(court, open, close, now, nil)

	if len(slots) != 15 {
		t.Fatalf("expected 15 hourly slots between 08:00 and 23:00, got %d", len(slots))
	}
	if !slots[0].Start.Equal(day(8, 0)) || !slots[0].End.Equal(day(9, 0)) {
		t.Errorf("first slot = [%v, %v), want [08:00, 09:00)", slots[0].Start, slots[0].End)
	}
	last := slots[len(slots)-1]
	if !last.End.Equal(close) {
		t.Errorf("last slot ends at %v, want %v", last.End, close)
	}
}

func TestGenerateSlotsLastPartialSlotDropped(t *testing.T) {
	// A 90-minute granularity does not divide the 4-hour window evenly.
	// The walk must stop before a slot would cross closing time.
	court := testCourt(90, "10000")
	open, close := day(8, 0), day(12, 0)

	slots := GenerateSlots(court, open, close, day(0, 0), nil)

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if !slots[1].End.Equal(day(11, 0)) {
		t.Errorf("last slot ends at %v, want 11:00", slots[1].End)
	}
}

func TestGenerateSlotsExcludesBusyIntervals(t *testing.T) {
	court := testCourt(60, "12000")
	open, close := day(8, 0), day(12, 0)
	busy := []Interval{{Start: day(9, 0), End: day(10, 0)}}

	slots := GenerateSlots(court, open, close, day(0, 0), busy)

	for _, s := range slots {
		if s.Start.Equal(day(9, 0)) {
			t.Fatalf("slot 09:00 should be hidden by the busy interval")
		}
	}
	if len(slots) != 3 {
		t.Errorf("expected 3 free slots, got %d", len(slots))
	}
}

func TestGenerateSlotsBoundaryTouchIsNotConflict(t *testing.T) {
	// Half-open semantics: a busy interval ending at 10:00 leaves the
	// 10:00 slot free, and one starting at 12:00 leaves 11:00 free.
	court := testCourt(60, "12000")
	open, close := day(8, 0), day(14, 0)
	busy := []Interval{
		{Start: day(9, 0), End: day(10, 0)},
		{Start: day(12, 0), End: day(13, 0)},
	}

	slots := GenerateSlots(court, open, close, day(0, 0), busy)

	starts := make(map[string]bool)
	for _, s := range slots {
		starts[s.Start.Format("15:04")] = true
	}
	for _, want := range []string{"08:00", "10:00", "11:00", "13:00"} {
		if !starts[want] {
			t.Errorf("slot %s should be free", want)
		}
	}
	for _, taken := range []string{"09:00", "12:00"} {
		if starts[taken] {
			t.Errorf("slot %s should be busy", taken)
		}
	}
}

func TestGenerateSlotsSkipsStartedSlotsToday(t *testing.T) {
	court := testCourt(60, "12000")
	open, close := day(8, 0), day(23, 0)

	// 10:30, the 10:00 slot already started.
	slots := GenerateSlots(court, open, close, day(10, 30), nil)

	if len(slots) == 0 {
		t.Fatal("expected remaining slots for the day")
	}
	if !slots[0].Start.Equal(day(11, 0)) {
		t.Errorf("first offered slot = %v, want 11:00", slots[0].Start)
	}
}

func TestGenerateSlotsPriceProratesPartialHours(t *testing.T) {
	court := testCourt(90, "10000")
	slots := GenerateSlots(court, day(8, 0), day(12, 0), day(0, 0), nil)

	want := decimal.RequireFromString("15000")
	if !slots[0].Price.Equal(want) {
		t.Errorf("90-minute slot price = %s, want %s", slots[0].Price, want)
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	court := testCourt(60, "12000")
	busy := []Interval{{Start: day(10, 0), End: day(12, 0)}}

	first := GenerateSlots(court, day(8, 0), day(23, 0), day(0, 0), busy)
	second := GenerateSlots(court, day(8, 0), day(23, 0), day(0, 0), busy)

	if !reflect.DeepEqual(first, second) {
		t.Error("same inputs must produce the same slot list")
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical", day(9, 0), day(10, 0), day(9, 0), day(10, 0), true},
		{"contained", day(9, 0), day(12, 0), day(10, 0), day(11, 0), true},
		{"partial", day(9, 0), day(11, 0), day(10, 0), day(12, 0), true},
		{"touching end to start", day(9, 0), day(10, 0), day(10, 0), day(11, 0), false},
		{"touching start to end", day(10, 0), day(11, 0), day(9, 0), day(10, 0), false},
		{"disjoint", day(8, 0), day(9, 0), day(10, 0), day(11, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
		})
	}
}
