package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs for the Courtly backend.
// Pattern: courtly:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	// Catalog data changes rarely.
	TTL_CATALOG = 1 * time.Hour

	// Availability views go stale the moment a booking or hold lands, so
	// they get a short TTL on top of explicit invalidation.
	TTL_AVAILABILITY = 60 * time.Second
)

// ================== CACHE KEY BUILDERS ==================

// VenueKey caches a single venue by ID
func VenueKey(venueID string) string {
	return fmt.Sprintf("courtly:venues:detail:%s", venueID)
}

// VenueListKey caches the venue catalog listing
func VenueListKey() string {
	return "courtly:venues:list"
}

// CourtKey caches a single court by ID
func CourtKey(courtID string) string {
	return fmt.Sprintf("courtly:courts:detail:%s", courtID)
}

// CourtListKey caches the court listing for a venue
func CourtListKey(venueID string) string {
	return fmt.Sprintf("courtly:courts:list:%s", venueID)
}

// AvailabilityKey caches the generated slot list for a court and date
func AvailabilityKey(courtID, date string) string {
	return fmt.Sprintf("courtly:availability:%s:%s", courtID, date)
}

// AvailabilityPattern matches every cached day view for a court, used for
// invalidation when a booking or hold mutates that court's schedule.
func AvailabilityPattern(courtID string) string {
	return fmt.Sprintf("courtly:availability:%s:*", courtID)
}
