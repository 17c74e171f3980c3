package carts

import (
	"context"
	"log"
	"time"
)

// NoShowMarker is the slice of the booking service the job processor
// needs. Keeps the processor free of a direct bookings dependency.
type NoShowMarker interface {
	MarkNoShows(ctx context.Context) (int64, error)
}

// JobProcessor runs the periodic maintenance sweeps: reaping expired
// holds and flipping unconfirmed past bookings to no-shows.
type JobProcessor struct {
	cartSvc Service
	noShows NoShowMarker
	config  *JobConfig
	done    chan struct{}
}

// JobConfig contains configuration for background jobs
type JobConfig struct {
	ReapInterval   time.Duration
	NoShowInterval time.Duration
}

// DefaultJobConfig returns default job configuration
func DefaultJobConfig() *JobConfig {
	return &JobConfig{
		ReapInterval:   1 * time.Minute,
		NoShowInterval: 5 * time.Minute,
	}
}

// NewJobProcessor creates a new job processor
func NewJobProcessor(cartSvc Service, noShows NoShowMarker, config *JobConfig) *JobProcessor {
	if config == nil {
		config = DefaultJobConfig()
	}

	return &JobProcessor{
		cartSvc: cartSvc,
		noShows: noShows,
		config:  config,
		done:    make(chan struct{}),
	}
}

// Start starts all background jobs
func (jp *JobProcessor) Start(ctx context.Context) {
	log.Println("Starting cart background jobs...")

	go jp.startReaper(ctx)
	go jp.startNoShowMarker(ctx)

	log.Println("Cart background jobs started")
}

// Stop stops all background jobs
func (jp *JobProcessor) Stop() {
	log.Println("Stopping cart background jobs...")
	close(jp.done)
	log.Println("Cart background jobs stopped")
}

func (jp *JobProcessor) startReaper(ctx context.Context) {
	ticker := time.NewTicker(jp.config.ReapInterval)
	defer ticker.Stop()

	log.Printf("Started expired hold reaper with %v interval", jp.config.ReapInterval)

	for {
		select {
		case <-ticker.C:
			jp.reapExpiredHolds(ctx)
		case <-jp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (jp *JobProcessor) reapExpiredHolds(ctx context.Context) {
	reaped, err := jp.cartSvc.ReapExpired(ctx)
	if err != nil {
		log.Printf("Error reaping expired holds: %v", err)
		return
	}

	if reaped > 0 {
		log.Printf("Reaped %d expired holds", reaped)
	}
}

func (jp *JobProcessor) startNoShowMarker(ctx context.Context) {
	ticker := time.NewTicker(jp.config.NoShowInterval)
	defer ticker.Stop()

	log.Printf("Started no-show marker with %v interval", jp.config.NoShowInterval)

	for {
		select {
		case <-ticker.C:
			jp.markNoShows(ctx)
		case <-jp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (jp *JobProcessor) markNoShows(ctx context.Context) {
	marked, err := jp.noShows.MarkNoShows(ctx)
	if err != nil {
		log.Printf("Error marking no-shows: %v", err)
		return
	}

	if marked > 0 {
		log.Printf("Marked %d bookings as no-shows", marked)
	}
}

// GetJobStatus returns the status of background jobs
func (jp *JobProcessor) GetJobStatus() map[string]interface{} {
	return map[string]interface{}{
		"reap_interval":    jp.config.ReapInterval.String(),
		"no_show_interval": jp.config.NoShowInterval.String(),
		"status":           "running",
	}
}
