package payments

import (
	"github.com/gin-gonic/gin"

	"courtly/internal/shared/middleware"
)

func SetupPaymentRoutes(router *gin.RouterGroup, controller Controller) {
	payments := router.Group("/payments")
	{
		// Checkout needs a session; the return leg comes straight from
		// the gateway redirect, authenticated by the token itself.
		payments.POST("/checkout", middleware.JWTAuth(), controller.Checkout) // POST /api/v1/payments/checkout
		payments.POST("/confirm", controller.Confirm)                         // POST /api/v1/payments/confirm
		payments.GET("/return", controller.Return)                            // GET /api/v1/payments/return?token_ws=...
	}
}
