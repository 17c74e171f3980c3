package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"courtly/internal/courts"
	"courtly/internal/shared/config"
	"courtly/internal/shared/database"
	"courtly/internal/venues"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Courtly Database Seeder...")

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Delete in reverse dependency order
	tables := []string{
		"holds",
		"carts",
		"bookings",
		"courts",
		"venues",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	venueIDs, err := s.SeedVenues()
	if err != nil {
		return fmt.Errorf("failed to seed venues: %w", err)
	}

	if err := s.SeedCourts(venueIDs); err != nil {
		return fmt.Errorf("failed to seed courts: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedVenues creates the demo venues
func (s *Seeder) SeedVenues() (map[string]uuid.UUID, error) {
	fmt.Println("  🏟️  Seeding venues...")

	venueIDs := make(map[string]uuid.UUID)

	venuesData := []struct {
		key       string
		name      string
		address   string
		commune   string
		phone     string
		email     string
		openTime  string
		closeTime string
	}{
		{"centro", "Club Deportivo Centro", "Av. Libertador 1250", "Santiago Centro", "+56 2 2555 0101", "contacto@clubcentro.cl", "08:00", "23:00"},
		{"nunoa", "Complejo Ñuñoa Sport", "Av. Irarrázaval 3400", "Ñuñoa", "+56 2 2555 0202", "reservas@nunoasport.cl", "07:00", "22:00"},
		{"maipu", "Canchas Maipú Norte", "Camino a Rinconada 890", "Maipú", "+56 2 2555 0303", "info@canchasmaipu.cl", "09:00", "21:00"},
	}

	for _, venueData := range venuesData {
		venue := venues.Venue{
			ID:        uuid.New(),
			Name:      venueData.name,
			Address:   venueData.address,
			Commune:   venueData.commune,
			Phone:     venueData.phone,
			Email:     venueData.email,
			OpenTime:  venueData.openTime,
			CloseTime: venueData.closeTime,
			Active:    true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&venue).Error; err != nil {
			return nil, fmt.Errorf("failed to create venue %s: %w", venueData.name, err)
		}

		venueIDs[venueData.key] = venue.ID
		fmt.Printf("    ✅ Created venue: %s (%s-%s)\n", venue.Name, venue.OpenTime, venue.CloseTime)
	}

	return venueIDs, nil
}

// SeedCourts creates courts across the demo venues
func (s *Seeder) SeedCourts(venueIDs map[string]uuid.UUID) error {
	fmt.Println("  🎾 Seeding courts...")

	courtsData := []struct {
		venueKey    string
		name        string
		description string
		sport       string
		surface     string
		hourlyRate  int64
		slotMinutes int
	}{
		{"centro", "Cancha 1", "Fútbol 7 con pasto sintético", courts.SportFootball, "synthetic grass", 28000, 60},
		{"centro", "Cancha 2", "Fútbol 7 con pasto sintético", courts.SportFootball, "synthetic grass", 28000, 60},
		{"centro", "Padel A", "Cancha de padel techada", courts.SportPadel, "artificial turf", 18000, 90},
		{"nunoa", "Tenis Central", "Cancha de tenis de arcilla", courts.SportTennis, "clay", 15000, 60},
		{"nunoa", "Tenis 2", "Cancha de tenis rápida", courts.SportTennis, "hard", 12000, 60},
		{"nunoa", "Multicancha", "Básquetbol, vóleibol y baby fútbol", courts.SportMulti, "concrete", 10000, 30},
		{"maipu", "Cancha Grande", "Fútbol 11 con pasto natural", courts.SportFootball, "natural grass", 45000, 120},
	}

	for _, courtData := range courtsData {
		court := courts.Court{
			ID:          uuid.New(),
			VenueID:     venueIDs[courtData.venueKey],
			Name:        courtData.name,
			Description: courtData.description,
			Sport:       courtData.sport,
			SurfaceType: courtData.surface,
			HourlyRate:  decimal.NewFromInt(courtData.hourlyRate),
			SlotMinutes: courtData.slotMinutes,
			Active:      true,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&court).Error; err != nil {
			return fmt.Errorf("failed to create court %s: %w", courtData.name, err)
		}

		fmt.Printf("    ✅ Created court: %s / %s ($%d/hr, %dmin slots)\n",
			courtData.venueKey, court.Name, courtData.hourlyRate, court.SlotMinutes)
	}

	return nil
}
