package payments

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courtly/internal/shared/middleware"
	"courtly/internal/shared/utils/response"
)

type Controller interface {
	Checkout(c *gin.Context)
	Confirm(c *gin.Context)
	Return(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) Checkout(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}

	checkout, err := ctrl.service.InitiateCheckout(c.Request.Context(), ownerID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Checkout started", checkout, nil)
}

type confirmRequest struct {
	Token string `json:"token" binding:"required"`
}

func (ctrl *controller) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	ctrl.confirm(c, req.Token)
}

// Return handles the gateway's browser redirect, which arrives as a GET
// with the token in the query string and no JWT attached.
func (ctrl *controller) Return(c *gin.Context) {
	token := c.Query("token_ws")
	if token == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Query parameter 'token_ws' is required", nil, nil)
		return
	}

	ctrl.confirm(c, token)
}

func (ctrl *controller) confirm(c *gin.Context, token string) {
	result, err := ctrl.service.ConfirmPayment(c.Request.Context(), token)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	message := "Payment approved"
	switch result.Status {
	case ResultDeclined:
		message = "Payment declined, the held slots were released"
	case ResultAlreadyProcessed:
		message = "Payment already processed"
	}

	response.RespondJSON(c, "success", http.StatusOK, message, result, nil)
}
