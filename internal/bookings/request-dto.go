package bookings

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBookingRequest books a court directly for one interval. Price is
// optional, it defaults to the court's hourly rate times the duration.
type CreateBookingRequest struct {
	CourtID   string           `json:"court_id" binding:"required,uuid"`
	StartTime time.Time        `json:"start_time" binding:"required"`
	EndTime   time.Time        `json:"end_time" binding:"required"`
	Price     *decimal.Decimal `json:"price" binding:"omitempty"`
	Notes     string           `json:"notes" binding:"omitempty,max=500"`
}

// ListBookingsQuery paginates the caller's booking history
type ListBookingsQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
