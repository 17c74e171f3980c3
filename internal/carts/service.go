package carts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"courtly/internal/availability"
	"courtly/internal/courts"
	"courtly/internal/shared/clock"
	"courtly/internal/shared/errs"
	"courtly/pkg/logger"
)

type Service interface {
	// ViewCart returns the owner's open cart, dropping any holds that
	// expired since the last look.
	ViewCart(ctx context.Context, ownerID uuid.UUID, ownerEmail string) (*CartResponse, error)
	AddHold(ctx context.Context, ownerID uuid.UUID, ownerEmail string, req AddHoldRequest) (*CartResponse, error)
	RemoveHold(ctx context.Context, ownerID, holdID uuid.UUID) (*CartResponse, error)

	// ReapExpired is invoked by the background job processor.
	ReapExpired(ctx context.Context) (int64, error)
}

type service struct {
	repo         Repository
	courtSvc     courts.Service
	availSvc     availability.Service
	clock        clock.Clock
	holdDuration time.Duration
	log          *logger.Logger
}

func NewService(repo Repository, courtSvc courts.Service, availSvc availability.Service, clk clock.Clock, holdDuration time.Duration) Service {
	return &service{
		repo:         repo,
		courtSvc:     courtSvc,
		availSvc:     availSvc,
		clock:        clk,
		holdDuration: holdDuration,
		log:          logger.GetDefault(),
	}
}

func (s *service) ViewCart(ctx context.Context, ownerID uuid.UUID, ownerEmail string) (*CartResponse, error) {
	cart, err := s.repo.GetOrCreateOpenCart(ctx, ownerID, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	loaded, err := s.repo.GetOpenCartWithHolds(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response := cart.ToResponse()
			return &response, nil
		}
		return nil, fmt.Errorf("failed to load cart holds: %w", err)
	}

	// Lazy cleanup: a view after expiry shows the truth even if the
	// reaper has not swept yet.
	now := s.clock.Now()
	var live []Hold
	var expired []uuid.UUID
	courtsToInvalidate := make(map[uuid.UUID]bool)
	for _, h := range loaded.Holds {
		if h.Expired(now) {
			expired = append(expired, h.ID)
			courtsToInvalidate[h.CourtID] = true
			continue
		}
		live = append(live, h)
	}
	if len(expired) > 0 {
		if err := s.repo.DeleteHolds(ctx, expired); err != nil {
			return nil, fmt.Errorf("failed to drop expired holds: %w", err)
		}
		for courtID := range courtsToInvalidate {
			s.availSvc.Invalidate(ctx, courtID)
		}
	}
	loaded.Holds = live

	response := loaded.ToResponse()
	return &response, nil
}

func (s *service) AddHold(ctx context.Context, ownerID uuid.UUID, ownerEmail string, req AddHoldRequest) (*CartResponse, error) {
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
		return nil, errs.Validation("holds must start in the future")
	}
	if !court.Venue.ContainsInterval(start.In(now.Location()), end.In(now.Location())) {
		return nil, errs.Validation("the requested time falls outside the venue's operating window (%s-%s)",
			court.Venue.OpenTime, court.Venue.CloseTime)
	}

	cart, err := s.repo.GetOrCreateOpenCart(ctx, ownerID, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	hold := &Hold{
		CartID:    cart.ID,
		CourtID:   courtID,
		StartTime: start,
		EndTime:   end,
		Price:     court.PriceFor(start, end),
		ExpiresAt: now.Add(s.holdDuration),
	}

	if err := s.repo.AddHoldWithConflictCheck(ctx, hold, now); err != nil {
		return nil, err
	}

	s.availSvc.Invalidate(ctx, courtID)
	s.log.LogHoldCreated(ctx, hold.ID.String(), courtID.String(), ownerID.String())

	return s.ViewCart(ctx, ownerID, ownerEmail)
}

func (s *service) RemoveHold(ctx context.Context, ownerID, holdID uuid.UUID) (*CartResponse, error) {
	hold, err := s.repo.RemoveHold(ctx, holdID, ownerID)
	if err != nil {
		return nil, err
	}

	s.availSvc.Invalidate(ctx, hold.CourtID)

	cart, err := s.repo.GetOpenCartWithHolds(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload cart: %w", err)
	}
	response := cart.ToResponse()
	return &response, nil
}

func (s *service) ReapExpired(ctx context.Context) (int64, error) {
	count, courtIDs, err := s.repo.ReapExpiredHolds(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}
	for _, courtID := range courtIDs {
		s.availSvc.Invalidate(ctx, courtID)
	}
	if count > 0 {
		s.log.LogHoldsReaped(ctx, count)
	}
	return count, nil
}
