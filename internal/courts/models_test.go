package courts

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPriceForProratesPartialHours(t *testing.T) {
	court := &Court{
		Name:       "Cancha 1",
		Sport:      SportFootball,
		HourlyRate: decimal.RequireFromString("12990"),
	}
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		minutes int
		want    string
	}{
		{"full hour", 60, "12990"},
		{"half hour", 30, "6495"},
		{"forty five minutes keeps cents exact", 45, "9742.5"},
		{"ninety minutes", 90, "19485"},
		{"two hours", 120, "25980"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			end := start.Add(time.Duration(tc.minutes) * time.Minute)
			got := court.PriceFor(start, end)
			want := decimal.RequireFromString(tc.want)
			if !got.Equal(want) {
				t.Errorf("PriceFor(%d min) = %s, want %s", tc.minutes, got, want)
			}
		})
	}
}

func TestProposedEndFollowsSlotGranularity(t *testing.T) {
	court := &Court{SlotMinutes: 90}
	start := time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)

	if got := court.ProposedEnd(start); !got.Equal(start.Add(90 * time.Minute)) {
		t.Errorf("ProposedEnd = %v, want 09:30", got)
	}
}
