package payments

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"courtly/internal/bookings"
)

// Payment result statuses returned to clients.
const (
	ResultApproved         = "approved"
	ResultDeclined         = "declined"
	ResultAlreadyProcessed = "already_processed"
)

// CheckoutResponse points the client at the gateway
type CheckoutResponse struct {
	CartID      uuid.UUID       `json:"cart_id"`
	Token       string          `json:"token"`
	RedirectURL string          `json:"redirect_url"`
	Amount      decimal.Decimal `json:"amount"`
}

// PaymentResultResponse is the outcome of a payment confirmation
type PaymentResultResponse struct {
	Status   string                     `json:"status"`
	CartID   uuid.UUID                  `json:"cart_id"`
	Bookings []bookings.BookingResponse `json:"bookings,omitempty"`
}
