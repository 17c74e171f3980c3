package courts

import (
	"github.com/gin-gonic/gin"

	"courtly/internal/shared/middleware"
)

func SetupCourtRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes. The venue param is named :id to match the venue
	// routes sharing the /venues prefix.
	publicCourts := router.Group("")
	{
		publicCourts.GET("/venues/:id/courts", controller.ListCourts) // GET /api/v1/venues/:id/courts - List active courts
		publicCourts.GET("/courts/:id", controller.GetCourt)          // GET /api/v1/courts/:id - Get court by ID
	}

	// Admin routes
	adminCourts := router.Group("/admin")
	adminCourts.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminCourts.POST("/venues/:id/courts", controller.CreateCourt) // POST /api/v1/admin/venues/:id/courts - Create court
		adminCourts.GET("/venues/:id/courts", controller.ListCourts)   // GET /api/v1/admin/venues/:id/courts - List all courts
		adminCourts.PUT("/courts/:id", controller.UpdateCourt)         // PUT /api/v1/admin/courts/:id - Update court
		adminCourts.DELETE("/courts/:id", controller.DeleteCourt)      // DELETE /api/v1/admin/courts/:id - Delete court
	}
}
