package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"courtly/internal/availability"
	"courtly/internal/courts"
	"courtly/internal/shared/clock"
	"courtly/internal/shared/errs"
	"courtly/pkg/logger"
)

// Notifier delivers booking lifecycle events to the owner. Delivery is
// best-effort, a failed notification never rolls back the transition.
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *Booking) error
	BookingCancelled(ctx context.Context, booking *Booking) error
}

// NopNotifier drops all notifications, used when Kafka is disabled.
type NopNotifier struct{}

func (NopNotifier) BookingConfirmed(ctx context.Context, booking *Booking) error { return nil }
func (NopNotifier) BookingCancelled(ctx context.Context, booking *Booking) error { return nil }

type Service interface {
	CreateBooking(ctx context.Context, ownerID uuid.UUID, ownerEmail string, req CreateBookingRequest) (*BookingResponse, error)
	ConfirmBooking(ctx context.Context, id, ownerID uuid.UUID) (*BookingResponse, error)
	CancelBooking(ctx context.Context, id, ownerID uuid.UUID) (*BookingResponse, error)
	GetBooking(ctx context.Context, id, ownerID uuid.UUID) (*BookingResponse, error)
	ListMyBookings(ctx context.Context, ownerID uuid.UUID, query ListBookingsQuery) (*PaginatedBookings, error)

	// MarkNoShows is invoked by the background job processor.
	MarkNoShows(ctx context.Context) (int64, error)
}

type service struct {
	repo               Repository
	courtSvc           courts.Service
	availSvc           availability.Service
	notifier           Notifier
	clock              clock.Clock
	cancellationWindow time.Duration
	log                *logger.Logger
}

func NewService(repo Repository, courtSvc courts.Service, availSvc availability.Service, notifier Notifier, clk clock.Clock, cancellationWindow time.Duration) Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &service{
		repo:               repo,
		courtSvc:           courtSvc,
		availSvc:           availSvc,
		notifier:           notifier,
		clock:              clk,
		cancellationWindow: cancellationWindow,
		log:                logger.GetDefault(),
	}
}

func (s *service) CreateBooking(ctx context.Context, ownerID uuid.UUID, ownerEmail string, req CreateBookingRequest) (*BookingResponse, error) {
	courtID, err := uuid.Parse(req.CourtID)
	if err != nil {
		return nil, errs.Validation("invalid court_id")
	}

	court, err := s.courtSvc.GetCourtWithVenue(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if !court.Active || !court.Venue.Active {
		return nil, errs.NotFound("court %s not found", courtID)
	}

	start := req.StartTime
	end := req.EndTime
	now := s.clock.Now()

	if !end.After(start) {
		return nil, errs.Validation("end_time must be after start_time")
	}
	if !start.After(now) {
		return nil, errs.Validation("bookings must start in the future")
	}
	if !court.Venue.ContainsInterval(start.In(now.Location()), end.In(now.Location())) {
		return nil, errs.Validation("the requested time falls outside the venue's operating window (%s-%s)",
			court.Venue.OpenTime, court.Venue.CloseTime)
	}

	price := court.PriceFor(start, end)
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, errs.Validation("price cannot be negative")
		}
		price = *req.Price
	}

	booking := &Booking{
		CourtID:    courtID,
		OwnerID:    ownerID,
		OwnerEmail: ownerEmail,
		StartTime:  start,
		EndTime:    end,
		Status:     StatusPending,
		Price:      price,
		Notes:      req.Notes,
	}

	if err := s.repo.CreateWithConflictCheck(ctx, booking, now); err != nil {
		return nil, err
	}

	s.availSvc.Invalidate(ctx, courtID)
	s.log.LogBookingCreated(ctx, booking.ID.String(), courtID.String(), ownerID.String())

	booking.Court = *court
	response := booking.ToResponse()
	return &response, nil
}

// ConfirmBooking is idempotent: confirming an already confirmed booking
// reports success without side effects.
func (s *service) ConfirmBooking(ctx context.Context, id, ownerID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case StatusConfirmed:
		response := booking.ToResponse()
		return &response, nil
	case StatusCancelled:
		return nil, errs.State("booking %s is cancelled and cannot be confirmed", id)
	case StatusNoShow:
		return nil, errs.State("booking %s was marked as a no-show", id)
	}

	if !s.clock.Now().Before(booking.StartTime) {
		return nil, errs.State("booking %s has expired, its start time has passed", id)
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusConfirmed); err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}
	booking.Status = StatusConfirmed

	if err := s.notifier.BookingConfirmed(ctx, booking); err != nil {
		s.log.ErrorWithContext(ctx, "booking confirmation notification failed", err, map[string]interface{}{
			"booking_id": id.String(),
		})
	}
	s.log.LogBookingConfirmed(ctx, id.String(), ownerID.String())

	response := booking.ToResponse()
	return &response, nil
}

// CancelBooking frees the interval. Cancelling an already cancelled booking
// reports success; cancelling inside the cancellation window is rejected.
func (s *service) CancelBooking(ctx context.Context, id, ownerID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if booking.Status == StatusCancelled {
		response := booking.ToResponse()
		return &response, nil
	}
	if booking.Status == StatusNoShow {
		return nil, errs.State("booking %s was marked as a no-show", id)
	}

	now := s.clock.Now()
	if !now.Before(booking.StartTime) {
		return nil, errs.State("booking %s has already started", id)
	}
	if now.After(booking.CancellableUntil(s.cancellationWindow)) {
		return nil, errs.State("bookings can only be cancelled up to %s before the start time",
			formatWindow(s.cancellationWindow))
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	booking.Status = StatusCancelled

	s.availSvc.Invalidate(ctx, booking.CourtID)

	if err := s.notifier.BookingCancelled(ctx, booking); err != nil {
		s.log.ErrorWithContext(ctx, "booking cancellation notification failed", err, map[string]interface{}{
			"booking_id": id.String(),
		})
	}
	s.log.LogBookingCancelled(ctx, id.String(), booking.CourtID.String(), ownerID.String())

	response := booking.ToResponse()
	return &response, nil
}

func (s *service) GetBooking(ctx context.Context, id, ownerID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	response := booking.ToResponse()
	return &response, nil
}

func (s *service) ListMyBookings(ctx context.Context, ownerID uuid.UUID, query ListBookingsQuery) (*PaginatedBookings, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	bookings, totalCount, err := s.repo.ListByOwner(ctx, ownerID, query.Page, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	responses := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = b.ToResponse()
	}

	return &PaginatedBookings{
		Bookings:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}, nil
}

func (s *service) MarkNoShows(ctx context.Context) (int64, error) {
	return s.repo.MarkNoShows(ctx, s.clock.Now())
}

// getOwned loads a booking and hides other owners' bookings behind a 404.
func (s *service) getOwned(ctx context.Context, id, ownerID uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("booking %s not found", id)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking.OwnerID != ownerID {
		return nil, errs.NotFound("booking %s not found", id)
	}
	return booking, nil
}

func formatWindow(d time.Duration) string {
	if d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return d.String()
}
