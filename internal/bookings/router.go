package bookings

import (
	"github.com/gin-gonic/gin"

	"courtly/internal/shared/middleware"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller) {
	bookings := router.Group("/bookings")
	bookings.Use(middleware.JWTAuth())
	{
		bookings.POST("", controller.CreateBooking)             // POST /api/v1/bookings - Book a court directly
		bookings.GET("", controller.ListMyBookings)             // GET /api/v1/bookings - My booking history
		bookings.GET("/:id", controller.GetBooking)             // GET /api/v1/bookings/:id - Get my booking
		bookings.POST("/:id/confirm", controller.ConfirmBooking) // POST /api/v1/bookings/:id/confirm - Confirm pending booking
		bookings.POST("/:id/cancel", controller.CancelBooking)   // POST /api/v1/bookings/:id/cancel - Cancel booking
	}
}
