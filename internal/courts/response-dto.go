package courts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CourtResponse is the public view of a court
type CourtResponse struct {
	ID          uuid.UUID       `json:"id"`
	VenueID     uuid.UUID       `json:"venue_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Sport       string          `json:"sport"`
	SurfaceType string          `json:"surface_type,omitempty"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	SlotMinutes int             `json:"slot_minutes"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToResponse converts a Court to its response format
func (c *Court) ToResponse() CourtResponse {
	return CourtResponse{
		ID:          c.ID,
		VenueID:     c.VenueID,
		Name:        c.Name,
		Description: c.Description,
		Sport:       c.Sport,
		SurfaceType: c.SurfaceType,
		HourlyRate:  c.HourlyRate,
		SlotMinutes: c.SlotMinutes,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
}
