package courts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for court operations
type Repository interface {
	Create(ctx context.Context, court *Court) error
	GetByID(ctx context.Context, id uuid.UUID) (*Court, error)
	GetByIDWithVenue(ctx context.Context, id uuid.UUID) (*Court, error)
	ListByVenue(ctx context.Context, venueID uuid.UUID, onlyActive bool) ([]Court, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new court repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, court *Court) error {
	return r.db.WithContext(ctx).Create(court).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Court, error) {
	var court Court
	err := r.db.WithContext(ctx).First(&court, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *repository) GetByIDWithVenue(ctx context.Context, id uuid.UUID) (*Court, error) {
	var court Court
	err := r.db.WithContext(ctx).Preload("Venue").First(&court, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *repository) ListByVenue(ctx context.Context, venueID uuid.UUID, onlyActive bool) ([]Court, error) {
	var list []Court
	query := r.db.WithContext(ctx).Where("venue_id = ?", venueID).Order("name ASC")
	if onlyActive {
		query = query.Where("active = true")
	}
	err := query.Find(&list).Error
	return list, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&Court{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Court{}, "id = ?", id).Error
}
