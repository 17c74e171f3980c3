package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Notification event types.
const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is the message published for each booking lifecycle change.
// Consumers (email senders, push services) read it off the topic.
type BookingEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	BookingID uuid.UUID `json:"booking_id"`

	OwnerID    uuid.UUID `json:"owner_id"`
	OwnerEmail string    `json:"owner_email"`

	CourtID   uuid.UUID       `json:"court_id"`
	CourtName string          `json:"court_name,omitempty"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	Price     decimal.Decimal `json:"price"`

	CreatedAt time.Time `json:"created_at"`
}

// ToJSON serializes the event for the wire
func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all of an owner's events to one partition so a
// consumer sees them in order.
func (e *BookingEvent) PartitionKey() string {
	return e.OwnerID.String()
}
