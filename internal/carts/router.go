package carts

import (
	"github.com/gin-gonic/gin"

	"courtly/internal/shared/middleware"
)

func SetupCartRoutes(router *gin.RouterGroup, controller Controller) {
	cart := router.Group("/cart")
	cart.Use(middleware.JWTAuth())
	{
		cart.GET("", controller.ViewCart)                    // GET /api/v1/cart - View my open cart
		cart.POST("/holds", controller.AddHold)              // POST /api/v1/cart/holds - Hold a slot
		cart.DELETE("/holds/:holdId", controller.RemoveHold) // DELETE /api/v1/cart/holds/:holdId - Release a hold
	}
}
