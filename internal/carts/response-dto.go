package carts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HoldResponse is the public view of a hold
type HoldResponse struct {
	ID        uuid.UUID       `json:"id"`
	CourtID   uuid.UUID       `json:"court_id"`
	CourtName string          `json:"court_name,omitempty"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	Price     decimal.Decimal `json:"price"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// CartResponse is the public view of the open cart
type CartResponse struct {
	ID    uuid.UUID       `json:"id"`
	Holds []HoldResponse  `json:"holds"`
	Total decimal.Decimal `json:"total"`
}

// ToResponse converts a Hold to its response format
func (h *Hold) ToResponse() HoldResponse {
	return HoldResponse{
		ID:        h.ID,
		CourtID:   h.CourtID,
		CourtName: h.Court.Name,
		StartTime: h.StartTime,
		EndTime:   h.EndTime,
		Price:     h.Price,
		ExpiresAt: h.ExpiresAt,
	}
}

// ToResponse converts a Cart to its response format
func (c *Cart) ToResponse() CartResponse {
	holds := make([]HoldResponse, len(c.Holds))
	for i, h := range c.Holds {
		holds[i] = h.ToResponse()
	}
	return CartResponse{
		ID:    c.ID,
		Holds: holds,
		Total: c.Total(),
	}
}
