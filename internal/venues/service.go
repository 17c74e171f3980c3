package venues

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"courtly/internal/shared/constants"
	"courtly/internal/shared/errs"
	"courtly/pkg/cache"
)

type Service interface {
	CreateVenue(ctx context.Context, req CreateVenueRequest) (*VenueResponse, error)
	GetVenue(ctx context.Context, id uuid.UUID) (*VenueResponse, error)
	ListVenues(ctx context.Context, onlyActive bool) ([]VenueResponse, error)
	UpdateVenue(ctx context.Context, id uuid.UUID, req UpdateVenueRequest) (*VenueResponse, error)
	DeleteVenue(ctx context.Context, id uuid.UUID) error

	// GetVenueModel is used by the courts and availability services, which
	// need the operating window rather than the response view.
	GetVenueModel(ctx context.Context, id uuid.UUID) (*Venue, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

// validateWindow checks that open and close are valid clocks and that the
// window is non-empty within a single day.
func validateWindow(open, close string) error {
	oh, om, err := ParseClock(open)
	if err != nil {
		return errs.Validation("invalid open_time: %v", err)
	}
	ch, cm, err := ParseClock(close)
	if err != nil {
		return errs.Validation("invalid close_time: %v", err)
	}
	if oh*60+om >= ch*60+cm {
		return errs.Validation("open_time %s must be before close_time %s", open, close)
	}
	return nil
}

func (s *service) CreateVenue(ctx context.Context, req CreateVenueRequest) (*VenueResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.Validation("venue name cannot be empty")
	}

	open := req.OpenTime
	if open == "" {
		open = "08:00"
	}
	close := req.CloseTime
	if close == "" {
		close = "23:00"
	}
	if err := validateWindow(open, close); err != nil {
		return nil, err
	}

	venue := &Venue{
		Name:      name,
		Address:   strings.TrimSpace(req.Address),
		Commune:   strings.TrimSpace(req.Commune),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		MapsURL:   strings.TrimSpace(req.MapsURL),
		OpenTime:  open,
		CloseTime: close,
		Active:    true,
	}

	if err := s.repo.Create(ctx, venue); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("a venue named %q already exists", name)
		}
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}

	s.invalidateCatalog(ctx, venue.ID)

	response := venue.ToResponse()
	return &response, nil
}

func (s *service) GetVenue(ctx context.Context, id uuid.UUID) (*VenueResponse, error) {
	var response VenueResponse
	err := s.cache.GetOrSet(ctx, constants.VenueKey(id.String()), constants.TTL_CATALOG, func() (interface{}, error) {
		venue, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return venue.ToResponse(), nil
	}, &response)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("venue %s not found", id)
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return &response, nil
}

func (s *service) ListVenues(ctx context.Context, onlyActive bool) ([]VenueResponse, error) {
	if !onlyActive {
		// Admin listing bypasses the public catalog cache.
		list, err := s.repo.List(ctx, false)
		if err != nil {
			return nil, fmt.Errorf("failed to list venues: %w", err)
		}
		return toResponses(list), nil
	}

	var responses []VenueResponse
	err := s.cache.GetOrSet(ctx, constants.VenueListKey(), constants.TTL_CATALOG, func() (interface{}, error) {
		list, err := s.repo.List(ctx, true)
		if err != nil {
			return nil, err
		}
		return toResponses(list), nil
	}, &responses)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return responses, nil
}

func (s *service) UpdateVenue(ctx context.Context, id uuid.UUID, req UpdateVenueRequest) (*VenueResponse, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("venue %s not found", id)
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errs.Validation("venue name cannot be empty")
		}
		updates["name"] = name
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if req.Commune != nil {
		updates["commune"] = strings.TrimSpace(*req.Commune)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		updates["email"] = strings.TrimSpace(*req.Email)
	}
	if req.MapsURL != nil {
		updates["maps_url"] = strings.TrimSpace(*req.MapsURL)
	}

	// Window changes are validated against the resulting pair, not each
	// field in isolation.
	open := current.OpenTime
	close := current.CloseTime
	if req.OpenTime != nil {
		open = *req.OpenTime
	}
	if req.CloseTime != nil {
		close = *req.CloseTime
	}
	if req.OpenTime != nil || req.CloseTime != nil {
		if err := validateWindow(open, close); err != nil {
			return nil, err
		}
		updates["open_time"] = open
		updates["close_time"] = close
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
			return nil, errs.Conflict("a venue with that name already exists")
		}
		return nil, fmt.Errorf("failed to update venue: %w", err)
	}

	s.invalidateCatalog(ctx, id)

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload venue: %w", err)
	}
	response := updated.ToResponse()
	return &response, nil
}

func (s *service) DeleteVenue(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("venue %s not found", id)
		}
		return fmt.Errorf("failed to get venue: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}

	s.invalidateCatalog(ctx, id)
	return nil
}

func (s *service) GetVenueModel(ctx context.Context, id uuid.UUID) (*Venue, error) {
	venue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("venue %s not found", id)
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return venue, nil
}

func (s *service) invalidateCatalog(ctx context.Context, id uuid.UUID) {
	_ = s.cache.Delete(ctx, constants.VenueListKey())
	_ = s.cache.Delete(ctx, constants.VenueKey(id.String()))
}

func toResponses(list []Venue) []VenueResponse {
	responses := make([]VenueResponse, len(list))
	for i, v := range list {
		responses[i] = v.ToResponse()
	}
	return responses
}
