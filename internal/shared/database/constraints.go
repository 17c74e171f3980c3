package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the database constraints the overlap and
// single-open-cart invariants rely on. AutoMigrate cannot express partial
// indexes or cross-column checks, so they are applied as raw SQL.
func MigrateConstraints(db *gorm.DB) error {
	// A booking interval must be well-formed no matter which code path
	// writes it. ADD CONSTRAINT has no IF NOT EXISTS in Postgres, so the
	// duplicate error is swallowed inside a DO block.
	err := db.Exec(`
		DO $$ BEGIN
			ALTER TABLE bookings
			ADD CONSTRAINT booking_end_after_start
			CHECK (end_time > start_time);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		DO $$ BEGIN
			ALTER TABLE holds
			ADD CONSTRAINT hold_end_after_start
			CHECK (end_time > start_time);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	// A venue window must open before it closes.
	err = db.Exec(`
		DO $$ BEGIN
			ALTER TABLE venues
			ADD CONSTRAINT venue_opens_before_close
			CHECK (open_time < close_time);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	// At most one open cart per owner. Concurrent first-touch get-or-create
	// races resolve here: the loser gets a unique violation and re-reads.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_open_cart_per_owner
		ON carts (owner_id) WHERE NOT paid;
	`).Error
	if err != nil {
		return err
	}

	// Overlap scans on the booking write path.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_court_start
		ON bookings (court_id, start_time);
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_court_end
		ON bookings (court_id, end_time);
	`).Error
	if err != nil {
		return err
	}

	// The reaper sweeps by expiry.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_holds_expires_at
		ON holds (expires_at);
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_holds_court_start
		ON holds (court_id, start_time);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
