package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"courtly/internal/courts"
)

// Booking statuses.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusNoShow    = "NO_SHOW"
)

// ActiveStatuses are the statuses that occupy the court's schedule.
var ActiveStatuses = []string{StatusPending, StatusConfirmed}

// Booking reserves [StartTime, EndTime) on a court for an owner. Intervals
// are half-open, so back-to-back bookings share a boundary without
// colliding. Price is snapshotted at creation and survives later rate
// changes on the court.
type Booking struct {
	ID      uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourtID uuid.UUID    `gorm:"type:uuid;not null;index" json:"court_id"`
	Court   courts.Court `gorm:"foreignKey:CourtID;constraint:OnDelete:RESTRICT" json:"-"`

	OwnerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	OwnerEmail string    `gorm:"not null" json:"owner_email"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status string          `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Price  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// IsActive reports whether the booking still occupies its interval.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CancellableUntil returns the last instant a cancellation is accepted.
func (b *Booking) CancellableUntil(window time.Duration) time.Time {
	return b.StartTime.Add(-window)
}
