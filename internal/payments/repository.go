package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"courtly/internal/bookings"
	"courtly/internal/carts"
	"courtly/internal/shared/database/locking"
	"courtly/internal/shared/errs"
)

// ErrAlreadyPaid signals the commit transaction found the cart already
// settled, the caller reports idempotent success.
var ErrAlreadyPaid = errors.New("cart already paid")

// Repository interface for payment reconciliation
type Repository interface {
	GetOpenCartWithHolds(ctx context.Context, ownerID uuid.UUID) (*carts.Cart, error)
	GetCartByToken(ctx context.Context, token string) (*carts.Cart, error)
	SaveToken(ctx context.Context, cartID uuid.UUID, token string) error
	CommitCart(ctx context.Context, cartID uuid.UUID, now time.Time) ([]bookings.Booking, error)
	AbortCart(ctx context.Context, cartID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new payment repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOpenCartWithHolds(ctx context.Context, ownerID uuid.UUID) (*carts.Cart, error) {
	var cart carts.Cart
	err := r.db.WithContext(ctx).
		Preload("Holds").
		Where("owner_id = ? AND paid = false", ownerID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *repository) GetCartByToken(ctx context.Context, token string) (*carts.Cart, error) {
	var cart carts.Cart
	err := r.db.WithContext(ctx).
		Preload("Holds").
		Where("payment_token = ?", token).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *repository) SaveToken(ctx context.Context, cartID uuid.UUID, token string) error {
	return r.db.WithContext(ctx).
		Model(&carts.Cart{}).
		Where("id = ?", cartID).
		Update("payment_token", token).Error
}

// CommitCart settles an authorized cart: every hold becomes a confirmed
// booking and the holds are deleted. The cart row is locked first so a
// duplicate gateway callback serializes behind the first and sees paid.
// The hold rows are locked too, a hold crossing its expiry mid-commit must
// not be reapable between the expiry re-check and the promotion commit.
func (r *repository) CommitCart(ctx context.Context, cartID uuid.UUID, now time.Time) ([]bookings.Booking, error) {
	var promoted []bookings.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart carts.Cart
		err := locking.LockForUpdate(tx).
			First(&cart, "id = ?", cartID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("cart %s not found", cartID)
			}
			return fmt.Errorf("failed to lock cart: %w", err)
		}

		if cart.Paid {
			return ErrAlreadyPaid
		}

		var holds []carts.Hold
		err = locking.LockForUpdate(tx.Where("cart_id = ?", cartID)).
			Find(&holds).Error
		if err != nil {
			return fmt.Errorf("failed to lock holds: %w", err)
		}

		if len(holds) == 0 {
			// The reaper emptied the cart while payment was in flight.
			if err := tx.Delete(&carts.Cart{}, "id = ?", cartID).Error; err != nil {
				return fmt.Errorf("failed to drop empty cart: %w", err)
			}
			return errs.Expired("the held slots expired before payment completed")
		}
		for _, h := range holds {
			if h.Expired(now) {
				if err := tx.Where("cart_id = ?", cartID).Delete(&carts.Hold{}).Error; err != nil {
					return fmt.Errorf("failed to drop expired holds: %w", err)
				}
				if err := tx.Delete(&carts.Cart{}, "id = ?", cartID).Error; err != nil {
					return fmt.Errorf("failed to drop expired cart: %w", err)
				}
				return errs.Expired("the held slots expired before payment completed")
			}
		}

		for _, h := range holds {
			booking := bookings.Booking{
				CourtID:    h.CourtID,
				OwnerID:    cart.OwnerID,
				OwnerEmail: cart.OwnerEmail,
				StartTime:  h.StartTime,
				EndTime:    h.EndTime,
				Status:     bookings.StatusConfirmed,
				Price:      h.Price,
			}
			if err := tx.Create(&booking).Error; err != nil {
				return fmt.Errorf("failed to promote hold %s: %w", h.ID, err)
			}
			// Reload with the court attached, notification events carry
			// the court name.
			if err := tx.Preload("Court").First(&booking, "id = ?", booking.ID).Error; err != nil {
				return fmt.Errorf("failed to reload booking %s: %w", booking.ID, err)
			}
			promoted = append(promoted, booking)
		}

		if err := tx.Model(&carts.Cart{}).Where("id = ?", cartID).Update("paid", true).Error; err != nil {
			return fmt.Errorf("failed to mark cart paid: %w", err)
		}
		if err := tx.Where("cart_id = ?", cartID).Delete(&carts.Hold{}).Error; err != nil {
			return fmt.Errorf("failed to clear promoted holds: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return promoted, nil
}

// AbortCart tears down a declined or expired cart with its holds.
func (r *repository) AbortCart(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&carts.Hold{}).Error; err != nil {
			return fmt.Errorf("failed to delete holds: %w", err)
		}
		if err := tx.Delete(&carts.Cart{}, "id = ?", cartID).Error; err != nil {
			return fmt.Errorf("failed to delete cart: %w", err)
		}
		return nil
	})
}
