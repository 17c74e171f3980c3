package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"courtly/internal/courts"
	"courtly/internal/shared/clock"
	"courtly/internal/shared/constants"
	"courtly/internal/shared/errs"
	"courtly/pkg/cache"
)

const dateLayout = "2006-01-02"

type Service interface {
	GetDayView(ctx context.Context, courtID uuid.UUID, date string) (*DayView, error)

	// Invalidate drops every cached day view for a court. Booking and cart
	// writes call this so stale views last at most one request.
	Invalidate(ctx context.Context, courtID uuid.UUID)
}

type service struct {
	repo     Repository
	courtSvc courts.Service
	cache    cache.Service
	clock    clock.Clock
	loc      *time.Location
}

func NewService(repo Repository, courtSvc courts.Service, cacheService cache.Service, clk clock.Clock, loc *time.Location) Service {
	if loc == nil {
		loc = time.Local
	}
	return &service{repo: repo, courtSvc: courtSvc, cache: cacheService, clock: clk, loc: loc}
}

func (s *service) GetDayView(ctx context.Context, courtID uuid.UUID, date string) (*DayView, error) {
	day, err := time.ParseInLocation(dateLayout, date, s.loc)
	if err != nil {
		return nil, errs.Validation("invalid date %q, want YYYY-MM-DD", date)
	}

	var view DayView
	err = s.cache.GetOrSet(ctx, constants.AvailabilityKey(courtID.String(), date), constants.TTL_AVAILABILITY, func() (interface{}, error) {
		return s.buildDayView(ctx, courtID, date, day)
	}, &view)
	if err != nil {
		return nil, fmt.Errorf("failed to build availability: %w", err)
	}
	return &view, nil
}

func (s *service) buildDayView(ctx context.Context, courtID uuid.UUID, date string, day time.Time) (*DayView, error) {
	court, err := s.courtSvc.GetCourtWithVenue(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if !court.Active || !court.Venue.Active {
		return nil, errs.NotFound("court %s not found", courtID)
	}

	open, close := court.Venue.WindowFor(day, s.loc)
	now := s.clock.Now().In(s.loc)

	busy, err := s.repo.BusyIntervals(ctx, courtID, open, close, now)
	if err != nil {
		return nil, err
	}

	return &DayView{
		CourtID: courtID,
		Date:    date,
		Slots:   GenerateSlots(court, open, close, now, busy),
	}, nil
}

func (s *service) Invalidate(ctx context.Context, courtID uuid.UUID) {
	_ = s.cache.DeletePattern(ctx, constants.AvailabilityPattern(courtID.String()))
}
