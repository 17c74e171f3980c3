package carts

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

// Repository interface for cart and hold operations
type Repository interface {
	GetOrCreateOpenCart(ctx context.Context, ownerID uuid.UUID, ownerEmail string) (*Cart, error)
	GetOpenCartWithHolds(ctx context.Context, ownerID uuid.UUID) (*Cart, error)
	AddHoldWithConflictCheck(ctx context.Context, hold *Hold, now time.Time) error
	RemoveHold(ctx context.Context, holdID, ownerID uuid.UUID) (*Hold, error)
	DeleteHolds(ctx context.Context, holdIDs []uuid.UUID) error
	ReapExpiredHolds(ctx context.Context, now time.Time) (int64, []uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new cart repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetOrCreateOpenCart returns the owner's open cart, creating it on first
// touch. Two concurrent first touches race on the partial unique index;
// the loser re-reads the winner's row.
func (r *repository) GetOrCreateOpenCart(ctx context.Context, ownerID uuid.UUID, ownerEmail string) (*Cart, error) {
	var cart Cart
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND paid = false", ownerID).
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = Cart{OwnerID: ownerID, OwnerEmail: ownerEmail}
	err = r.db.WithContext(ctx).Create(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("owner_id = ? AND paid = false", ownerID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *repository) GetOpenCartWithHolds(ctx context.Context, ownerID uuid.UUID) (*Cart, error) {
	var cart Cart
	err := r.db.WithContext(ctx).
		Preload("Holds", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC")
		}).
		Where("owner_id = ? AND paid = false", ownerID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddHoldWithConflictCheck inserts a hold atomically with overlap
// validation, mirroring the booking write path: lock the court row, then
// re-check bookings and active holds inside the transaction.
func (r *repository) AddHoldWithConflictCheck(ctx context.Context, hold *Hold, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var court struct {
			ID     uuid.UUID `gorm:"column:id"`
			Active bool      `gorm:"column:active"`
		}

		err := locking.LockForUpdate(
			tx.Table("courts").
				Select("id, active").
				Where("id = ?", hold.CourtID),
		).First(&court).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("court %s not found", hold.CourtID)
			}
			return fmt.Errorf("failed to lock court: %w", err)
		}
		if !court.Active {
			return errs.NotFound("court %s not found", hold.CourtID)
		}

		var bookingCount int64
		err = tx.Table("bookings").
			Where("court_id = ?", hold.CourtID).
			Where("status IN ?", []string{"PENDING", "CONFIRMED"}).
			Where("start_time < ? AND end_time > ?", hold.EndTime, hold.StartTime).
			Count(&bookingCount).Error
		if err != nil {
			return fmt.Errorf("failed to check booking overlap: %w", err)
		}
		if bookingCount > 0 {
			return errs.Conflict("the requested time overlaps an existing booking")
		}

		var holdCount int64
		err = tx.Table("holds").
			Where("court_id = ?", hold.CourtID).
			Where("paid = true OR expires_at > ?", now).
			Where("start_time < ? AND end_time > ?", hold.EndTime, hold.StartTime).
			Count(&holdCount).Error
		if err != nil {
			return fmt.Errorf("failed to check hold overlap: %w", err)
		}
		if holdCount > 0 {
			return errs.Conflict("the requested time is held by another cart")
		}

		if err := tx.Create(hold).Error; err != nil {
			return fmt.Errorf("failed to create hold: %w", err)
		}

		return nil
	})
}

// RemoveHold deletes a hold only when it belongs to the owner's open cart.
func (r *repository) RemoveHold(ctx context.Context, holdID, ownerID uuid.UUID) (*Hold, error) {
	var hold Hold
	err := r.db.WithContext(ctx).
		Joins("JOIN carts ON carts.id = holds.cart_id").
		Where("holds.id = ? AND carts.owner_id = ? AND carts.paid = false", holdID, ownerID).
		First(&hold).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("hold %s not found", holdID)
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&Hold{}, "id = ?", holdID).Error; err != nil {
		return nil, fmt.Errorf("failed to remove hold: %w", err)
	}
	return &hold, nil
}

func (r *repository) DeleteHolds(ctx context.Context, holdIDs []uuid.UUID) error {
	if len(holdIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&Hold{}, "id IN ?", holdIDs).Error
}

// ReapExpiredHolds deletes lapsed unpaid holds and returns the affected
// court IDs so the caller can invalidate their availability views.
func (r *repository) ReapExpiredHolds(ctx context.Context, now time.Time) (int64, []uuid.UUID, error) {
	var courtIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&Hold{}).
		Distinct("court_id").
		Where("paid = false AND expires_at < ?", now).
		Pluck("court_id", &courtIDs).Error
	if err != nil {
		return 0, nil, err
	}
	if len(courtIDs) == 0 {
		return 0, nil, nil
	}

	result := r.db.WithContext(ctx).
		Where("paid = false AND expires_at < ?", now).
		Delete(&Hold{})
	if result.Error != nil {
		return 0, nil, result.Error
	}

	return result.RowsAffected, courtIDs, nil
}
