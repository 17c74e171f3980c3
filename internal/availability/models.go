package availability

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Slot is one bookable interval on a court's day view. Slots are half-open:
// a slot ending at 10:00 does not collide with one starting at 10:00.
type Slot struct {
	Start time.Time       `json:"start"`
	End   time.Time       `json:"end"`
	Price decimal.Decimal `json:"price"`
}

// Interval is a busy span taken by a booking or an active hold.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DayView is the availability response for one court and date
type DayView struct {
	CourtID uuid.UUID `json:"court_id"`
	Date    string    `json:"date"`
	Slots   []Slot    `json:"slots"`
}
