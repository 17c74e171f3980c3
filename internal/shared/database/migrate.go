package database

import (
	"courtly/internal/bookings"
	"courtly/internal/carts"
	"courtly/internal/courts"
	"courtly/internal/venues"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&venues.Venue{},
		&courts.Court{},
		&bookings.Booking{},
		&carts.Cart{},
		&carts.Hold{},
	)
}
