package courts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"courtly/internal/venues"
)

// Sport categories a court can host.
const (
	SportFootball = "FOOTBALL"
	SportTennis   = "TENNIS"
	SportPadel    = "PADEL"
	SportMulti    = "MULTI"
	SportOther    = "OTHER"
)

// ValidSports maps the accepted sport values.
var ValidSports = map[string]bool{
	SportFootball: true,
	SportTennis:   true,
	SportPadel:    true,
	SportMulti:    true,
	SportOther:    true,
}

// Court is a bookable resource inside a venue. Slot granularity and pricing
// are per court, the operating window comes from the venue.
type Court struct {
	ID      uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VenueID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uniq_court_name_per_venue" json:"venue_id"`
	Venue   venues.Venue `gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE" json:"-"`

	Name        string `gorm:"not null;uniqueIndex:uniq_court_name_per_venue" json:"name"`
	Description string `json:"description,omitempty"`
	Sport       string `gorm:"type:varchar(20);not null;default:'MULTI'" json:"sport"`
	SurfaceType string `gorm:"type:varchar(40)" json:"surface_type,omitempty"`

	// Price per hour, prorated for partial hours.
	HourlyRate decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"hourly_rate"`

	// Slot granularity in minutes, drives availability generation.
	SlotMinutes int `gorm:"not null;default:60" json:"slot_minutes"`

	Active bool `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Court
func (Court) TableName() string {
	return "courts"
}

var minutesPerHour = decimal.NewFromInt(60)

// PriceFor computes the price of [start,end) as hourly rate times elapsed
// hours, rounded to cents. The duration stays in integer minutes, money
// math never passes through a float.
func (c *Court) PriceFor(start, end time.Time) decimal.Decimal {
	minutes := decimal.NewFromInt(int64(end.Sub(start) / time.Minute))
	return c.HourlyRate.Mul(minutes).Div(minutesPerHour).Round(2)
}

// ProposedEnd returns the end of the slot starting at start.
func (c *Court) ProposedEnd(start time.Time) time.Time {
	return start.Add(time.Duration(c.SlotMinutes) * time.Minute)
}
