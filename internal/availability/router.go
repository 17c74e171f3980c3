package availability

import (
	"github.com/gin-gonic/gin"
)

func SetupAvailabilityRoutes(router *gin.RouterGroup, controller Controller) {
	// Availability is public, browsing does not require a session.
	router.GET("/courts/:id/availability", controller.GetDayView) // GET /api/v1/courts/:id/availability?date=YYYY-MM-DD
}
