package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingResponse is the public view of a booking
type BookingResponse struct {
	ID        uuid.UUID       `json:"id"`
	CourtID   uuid.UUID       `json:"court_id"`
	CourtName string          `json:"court_name,omitempty"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	Status    string          `json:"status"`
	Price     decimal.Decimal `json:"price"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// PaginatedBookings wraps a page of the caller's booking history
type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// ToResponse converts a Booking to its response format
func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		CourtID:   b.CourtID,
		CourtName: b.Court.Name,
		OwnerID:   b.OwnerID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status,
		Price:     b.Price,
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
	}
}
