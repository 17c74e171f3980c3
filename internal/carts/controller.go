package carts

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"courtly/internal/shared/middleware"
	"courtly/internal/shared/utils/response"
)

type Controller interface {
	ViewCart(c *gin.Context)
	AddHold(c *gin.Context)
	RemoveHold(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) ViewCart(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}

	cart, err := ctrl.service.ViewCart(c.Request.Context(), ownerID, middleware.CurrentUserEmail(c))
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Cart retrieved successfully", cart, nil)
}

func (ctrl *controller) AddHold(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}

	var req AddHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	cart, err := ctrl.service.AddHold(c.Request.Context(), ownerID, middleware.CurrentUserEmail(c), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Hold added to cart", cart, nil)
}

func (ctrl *controller) RemoveHold(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}

	holdID, err := uuid.Parse(c.Param("holdId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid hold ID", nil, err.Error())
		return
	}

	cart, err := ctrl.service.RemoveHold(c.Request.Context(), ownerID, holdID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Hold removed from cart", cart, nil)
}
