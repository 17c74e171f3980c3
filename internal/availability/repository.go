package availability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository loads the busy intervals for a court. It reads the bookings
// and holds tables directly so the day view does not depend on those
// packages' write paths.
type Repository interface {
	BusyIntervals(ctx context.Context, courtID uuid.UUID, from, to, now time.Time) ([]Interval, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) BusyIntervals(ctx context.Context, courtID uuid.UUID, from, to, now time.Time) ([]Interval, error) {
	var intervals []Interval

	// Live bookings block their span. Cancelled bookings free it, no-shows
	// keep their historical span but those are always in the past.
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`start_time AS "start", end_time AS "end"`).
		Where("court_id = ?", courtID).
		Where("status IN ?", []string{"PENDING", "CONFIRMED"}).
		Where("start_time < ? AND end_time > ?", to, from).
		Scan(&intervals).Error
	if err != nil {
		return nil, err
	}

	// Active holds block their span too, so a slot in someone's live cart
	// is not offered twice. An expired unpaid hold no longer counts even
	// if the reaper has not deleted the row yet.
	var holdIntervals []Interval
	err = r.db.WithContext(ctx).
		Table("holds").
		Select(`start_time AS "start", end_time AS "end"`).
		Where("court_id = ?", courtID).
		Where("paid = true OR expires_at > ?", now).
		Where("start_time < ? AND end_time > ?", to, from).
		Scan(&holdIntervals).Error
	if err != nil {
		return nil, err
	}

	return append(intervals, holdIntervals...), nil
}
