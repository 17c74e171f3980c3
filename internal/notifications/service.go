package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"courtly/internal/bookings"
)

// BookingNotifier adapts the event producer to the booking service's
// notifier contract.
type BookingNotifier struct {
	producer EventProducer
}

// NewBookingNotifier creates a notifier publishing through producer
func NewBookingNotifier(producer EventProducer) *BookingNotifier {
	return &BookingNotifier{producer: producer}
}

func (n *BookingNotifier) BookingConfirmed(ctx context.Context, booking *bookings.Booking) error {
	return n.producer.Publish(ctx, eventFrom(EventBookingConfirmed, booking))
}

func (n *BookingNotifier) BookingCancelled(ctx context.Context, booking *bookings.Booking) error {
	return n.producer.Publish(ctx, eventFrom(EventBookingCancelled, booking))
}

func eventFrom(eventType string, booking *bookings.Booking) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.New(),
		Type:       eventType,
		BookingID:  booking.ID,
		OwnerID:    booking.OwnerID,
		OwnerEmail: booking.OwnerEmail,
		CourtID:    booking.CourtID,
		CourtName:  booking.Court.Name,
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		Price:      booking.Price,
		CreatedAt:  time.Now().UTC(),
	}
}
