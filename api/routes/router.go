// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"courtly/internal/availability"
	"courtly/internal/bookings"
	"courtly/internal/carts"
	"courtly/internal/courts"
	"courtly/internal/payments"
	"courtly/internal/shared/clock"
	"courtly/internal/shared/config"
	"courtly/internal/shared/database"
	"courtly/internal/venues"
	"courtly/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	clock    clock.Clock
	notifier bookings.Notifier

	cacheService cache.Service

	// Services shared across route groups and with the job processor.
	venueService        venues.Service
	courtService        courts.Service
	availabilityService availability.Service
	bookingService      bookings.Service
	cartService         carts.Service
	paymentService      payments.Service
}

// NewRouter creates a new router instance. The notifier may be nil when
// Kafka is disabled.
func NewRouter(cfg *config.Config, db *database.DB, clk clock.Clock, notifier bookings.Notifier) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		clock:    clk,
		notifier: notifier,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.buildServices()

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupVenueRoutes(api)
		r.setupCourtRoutes(api)
		r.setupAvailabilityRoutes(api)
		r.setupBookingRoutes(api)
		r.setupCartRoutes(api)
		r.setupPaymentRoutes(api)
	}
}

// buildServices wires the repositories and services in dependency order.
func (r *Router) buildServices() {
	pg := r.db.GetPostgreSQL()
	r.cacheService = cache.NewService(r.db.GetRedisClient())

	venueRepo := venues.NewRepository(pg)
	r.venueService = venues.NewService(venueRepo, r.cacheService)

	courtRepo := courts.NewRepository(pg)
	r.courtService = courts.NewService(courtRepo, r.venueService, r.cacheService)

	availRepo := availability.NewRepository(pg)
	r.availabilityService = availability.NewService(availRepo, r.courtService, r.cacheService, r.clock, time.Local)

	bookingRepo := bookings.NewRepository(pg)
	r.bookingService = bookings.NewService(bookingRepo, r.courtService, r.availabilityService,
		r.notifier, r.clock, r.config.Booking.CancellationWindow)

	cartRepo := carts.NewRepository(pg)
	r.cartService = carts.NewService(cartRepo, r.courtService, r.availabilityService,
		r.clock, r.config.Booking.HoldDuration)

	paymentRepo := payments.NewRepository(pg)
	r.paymentService = payments.NewService(paymentRepo, r.buildPaymentProvider(),
		r.notifier, r.availabilityService, r.clock, r.config.Payment.ReturnURL)
}

// buildPaymentProvider selects the gateway implementation from config.
func (r *Router) buildPaymentProvider() payments.Provider {
	if r.config.Payment.Mode == "webpay" {
		return payments.NewWebpayProvider(r.config.Payment)
	}
	return payments.NewSandboxProvider()
}

// CartService exposes the cart service for the background job processor.
func (r *Router) CartService() carts.Service {
	return r.cartService
}

// BookingService exposes the booking service for the background job processor.
func (r *Router) BookingService() bookings.Service {
	return r.bookingService
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "courtly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "courtly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupVenueRoutes(rg *gin.RouterGroup) {
	controller := venues.NewController(r.venueService)
	venues.SetupVenueRoutes(rg, controller)
}

func (r *Router) setupCourtRoutes(rg *gin.RouterGroup) {
	controller := courts.NewController(r.courtService)
	courts.SetupCourtRoutes(rg, controller)
}

func (r *Router) setupAvailabilityRoutes(rg *gin.RouterGroup) {
	controller := availability.NewController(r.availabilityService)
	availability.SetupAvailabilityRoutes(rg, controller)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	controller := bookings.NewController(r.bookingService)
	bookings.SetupBookingRoutes(rg, controller)
}

func (r *Router) setupCartRoutes(rg *gin.RouterGroup) {
	controller := carts.NewController(r.cartService)
	carts.SetupCartRoutes(rg, controller)
}

func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	controller := payments.NewController(r.paymentService)
	payments.SetupPaymentRoutes(rg, controller)
}
