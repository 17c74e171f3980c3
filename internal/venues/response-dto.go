package venues

import (
	"time"

	"github.com/google/uuid"
)

// VenueResponse is the public view of a venue
type VenueResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Commune   string    `json:"commune,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	MapsURL   string    `json:"maps_url,omitempty"`
	OpenTime  string    `json:"open_time"`
	CloseTime string    `json:"close_time"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts a Venue to its response format
func (v *Venue) ToResponse() VenueResponse {
	return VenueResponse{
		ID:        v.ID,
		Name:      v.Name,
		Address:   v.Address,
		Commune:   v.Commune,
		Phone:     v.Phone,
		Email:     v.Email,
		MapsURL:   v.MapsURL,
		OpenTime:  v.OpenTime,
		CloseTime: v.CloseTime,
		Active:    v.Active,
		CreatedAt: v.CreatedAt,
	}
}
