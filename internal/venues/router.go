package venues

import (
	"github.com/gin-gonic/gin"

	"courtly/internal/shared/middleware"
)

func SetupVenueRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes
	publicVenues := router.Group("/venues")
	{
		publicVenues.GET("", controller.ListVenues)    // GET /api/v1/venues - List active venues
		publicVenues.GET("/:id", controller.GetVenue)  // GET /api/v1/venues/:id - Get venue by ID
	}

	// Admin routes
	adminVenues := router.Group("/admin/venues")
	adminVenues.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminVenues.POST("", controller.CreateVenue)       // POST /api/v1/admin/venues - Create venue
		adminVenues.GET("", controller.ListVenues)         // GET /api/v1/admin/venues - List all venues
		adminVenues.PUT("/:id", controller.UpdateVenue)    // PUT /api/v1/admin/venues/:id - Update venue
		adminVenues.DELETE("/:id", controller.DeleteVenue) // DELETE /api/v1/admin/venues/:id - Delete venue
	}
}
