package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"courtly/internal/shared/database/locking"
	"courtly/internal/shared/errs"
)

// Repository interface for booking operations
type Repository interface {
	CreateWithConflictCheck(ctx context.Context, booking *Booking, now time.Time) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]Booking, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	MarkNoShows(ctx context.Context, before time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new booking repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateWithConflictCheck creates a booking atomically with overlap validation.
// The court row is locked first so two writers for the same court serialize;
// the overlap re-check then sees any booking or hold a concurrent transaction
// committed before us.
func (r *repository) CreateWithConflictCheck(ctx context.Context, booking *Booking, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the court row to serialize writers on this court
		var court struct {
			ID     uuid.UUID `gorm:"column:id"`
			Active bool      `gorm:"column:active"`
		}

		err := locking.LockForUpdate(
			tx.Table("courts").
				Select("id, active").
				Where("id = ?", booking.CourtID),
		).First(&court).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("court %s not found", booking.CourtID)
			}
			return fmt.Errorf("failed to lock court: %w", err)
		}
		if !court.Active {
			return errs.NotFound("court %s not found", booking.CourtID)
		}

		// 2. Check for overlapping live bookings (half-open intervals)
		var bookingCount int64
		err = tx.Table("bookings").
			Where("court_id = ?", booking.CourtID).
			Where("status IN ?", ActiveStatuses).
			Where("start_time < ? AND end_time > ?", booking.EndTime, booking.StartTime).
			Count(&bookingCount).Error
		if err != nil {
			return fmt.Errorf("failed to check booking overlap: %w", err)
		}
		if bookingCount > 0 {
			return errs.Conflict("the requested time overlaps an existing booking")
		}

		// 3. Check for overlapping active holds
		var holdCount int64
		err = tx.Table("holds").
			Where("court_id = ?", booking.CourtID).
			Where("paid = true OR expires_at > ?", now).
			Where("start_time < ? AND end_time > ?", booking.EndTime, booking.StartTime).
			Count(&holdCount).Error
		if err != nil {
			return fmt.Errorf("failed to check hold overlap: %w", err)
		}
		if holdCount > 0 {
			return errs.Conflict("the requested time is held by another cart")
		}

		// 4. Create the booking
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Preload("Court").First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	baseQuery := r.db.WithContext(ctx).Model(&Booking{}).Where("owner_id = ?", ownerID)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := baseQuery.
		Preload("Court").
		Order("start_time DESC").
		Offset(offset).
		Limit(limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// MarkNoShows flips bookings that were never confirmed and whose start has
// passed. Run by the background job, not request handlers.
func (r *repository) MarkNoShows(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("status = ?", StatusPending).
		Where("start_time < ?", before).
		Update("status", StatusNoShow)
	return result.RowsAffected, result.Error
}
