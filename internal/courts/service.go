package courts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"courtly/internal/shared/constants"
	"courtly/internal/shared/errs"
	"courtly/internal/venues"
	"courtly/pkg/cache"
)

type Service interface {
	CreateCourt(ctx context.Context, venueID uuid.UUID, req CreateCourtRequest) (*CourtResponse, error)
	GetCourt(ctx context.Context, id uuid.UUID) (*CourtResponse, error)
	ListCourts(ctx context.Context, venueID uuid.UUID, onlyActive bool) ([]CourtResponse, error)
	UpdateCourt(ctx context.Context, id uuid.UUID, req UpdateCourtRequest) (*CourtResponse, error)
	DeleteCourt(ctx context.Context, id uuid.UUID) error

	// GetCourtWithVenue is used by the availability and cart services, which
	// need the venue window and pricing together.
	GetCourtWithVenue(ctx context.Context, id uuid.UUID) (*Court, error)
}

type service struct {
	repo     Repository
	venueSvc venues.Service
	cache    cache.Service
}

func NewService(repo Repository, venueSvc venues.Service, cacheService cache.Service) Service {
	return &service{repo: repo, venueSvc: venueSvc, cache: cacheService}
}

func (s *service) CreateCourt(ctx context.Context, venueID uuid.UUID, req CreateCourtRequest) (*CourtResponse, error) {
	// The venue must exist before we hang a court off it.
	if _, err := s.venueSvc.GetVenueModel(ctx, venueID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.Validation("court name cannot be empty")
	}

	sport := req.Sport
	if sport == "" {
		sport = SportMulti
	}
	if !ValidSports[sport] {
		return nil, errs.Validation("unknown sport %q", sport)
	}

	if req.HourlyRate.IsNegative() || req.HourlyRate.IsZero() {
		return nil, errs.Validation("hourly_rate must be positive")
	}

	slotMinutes := req.SlotMinutes
	if slotMinutes == 0 {
		slotMinutes = 60
	}

	court := &Court{
		VenueID:     venueID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Sport:       sport,
		SurfaceType: strings.TrimSpace(req.SurfaceType),
		HourlyRate:  req.HourlyRate,
		SlotMinutes: slotMinutes,
		Active:      true,
	}

	if err := s.repo.Create(ctx, court); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("a court named %q already exists at this venue", name)
		}
		return nil, fmt.Errorf("failed to create court: %w", err)
	}

	s.invalidateCatalog(ctx, court)

	response := court.ToResponse()
	return &response, nil
}

func (s *service) GetCourt(ctx context.Context, id uuid.UUID) (*CourtResponse, error) {
	var response CourtResponse
	err := s.cache.GetOrSet(ctx, constants.CourtKey(id.String()), constants.TTL_CATALOG, func() (interface{}, error) {
		court, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return court.ToResponse(), nil
	}, &response)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("court %s not found", id)
		}
		return nil, fmt.Errorf("failed to get court: %w", err)
	}
	return &response, nil
}

func (s *service) ListCourts(ctx context.Context, venueID uuid.UUID, onlyActive bool) ([]CourtResponse, error) {
	if !onlyActive {
		list, err := s.repo.ListByVenue(ctx, venueID, false)
		if err != nil {
			return nil, fmt.Errorf("failed to list courts: %w", err)
		}
		return toResponses(list), nil
	}

	var responses []CourtResponse
	err := s.cache.GetOrSet(ctx, constants.CourtListKey(venueID.String()), constants.TTL_CATALOG, func() (interface{}, error) {
		list, err := s.repo.ListByVenue(ctx, venueID, true)
		if err != nil {
			return nil, err
		}
		return toResponses(list), nil
	}, &responses)
	if err != nil {
		return nil, fmt.Errorf("failed to list courts: %w", err)
	}
	return responses, nil
}

func (s *service) UpdateCourt(ctx context.Context, id uuid.UUID, req UpdateCourtRequest) (*CourtResponse, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("court %s not found", id)
		}
		return nil, fmt.Errorf("failed to get court: %w", err)
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errs.Validation("court name cannot be empty")
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Sport != nil {
		if !ValidSports[*req.Sport] {
			return nil, errs.Validation("unknown sport %q", *req.Sport)
		}
		updates["sport"] = *req.Sport
	}
	if req.SurfaceType != nil {
		updates["surface_type"] = strings.TrimSpace(*req.SurfaceType)
	}
	if req.HourlyRate != nil {
		if req.HourlyRate.IsNegative() || req.HourlyRate.IsZero() {
			return nil, errs.Validation("hourly_rate must be positive")
		}
		// Existing bookings and holds keep their snapshotted price.
		updates["hourly_rate"] = *req.HourlyRate
	}
	if req.SlotMinutes != nil {
		updates["slot_minutes"] = *req.SlotMinutes
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) == 0 {
		response := current.ToResponse()
		return &response, nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("a court with that name already exists at this venue")
		}
		return nil, fmt.Errorf("failed to update court: %w", err)
	}

	s.invalidateCatalog(ctx, current)
	_ = s.cache.DeletePattern(ctx, constants.AvailabilityPattern(id.String()))

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload court: %w", err)
	}
	response := updated.ToResponse()
	return &response, nil
}

func (s *service) DeleteCourt(ctx context.Context, id uuid.UUID) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("court %s not found", id)
		}
		return fmt.Errorf("failed to get court: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete court: %w", err)
	}

	s.invalidateCatalog(ctx, current)
	_ = s.cache.DeletePattern(ctx, constants.AvailabilityPattern(id.String()))
	return nil
}

func (s *service) GetCourtWithVenue(ctx context.Context, id uuid.UUID) (*Court, error) {
	court, err := s.repo.GetByIDWithVenue(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("court %s not found", id)
		}
		return nil, fmt.Errorf("failed to get court: %w", err)
	}
	return court, nil
}

func (s *service) invalidateCatalog(ctx context.Context, court *Court) {
	_ = s.cache.Delete(ctx, constants.CourtKey(court.ID.String()))
	_ = s.cache.Delete(ctx, constants.CourtListKey(court.VenueID.String()))
}

func toResponses(list []Court) []CourtResponse {
	responses := make([]CourtResponse, len(list))
	for i, court := range list {
		responses[i] = court.ToResponse()
	}
	return responses
}
