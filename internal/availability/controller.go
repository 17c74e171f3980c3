package availability

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"courtly/internal/shared/utils/response"
)

type Controller interface {
	GetDayView(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetDayView(c *gin.Context) {
	courtID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid court ID", nil, err.Error())
		return
	}

	date := c.Query("date")
	if date == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Query parameter 'date' is required (YYYY-MM-DD)", nil, nil)
		return
	}

	view, err := ctrl.service.GetDayView(c.Request.Context(), courtID, date)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Availability retrieved successfully", view, nil)
}
