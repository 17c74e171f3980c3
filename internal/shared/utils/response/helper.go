package response

import (
	"errors"
	"net/http"

	"courtly/internal/shared/errs"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps the domain error taxonomy onto HTTP status codes so
// callers can tell "pick another time" (conflict) apart from "fix your
// input" (validation) and "too late" (state/expired).
func RespondError(c *gin.Context, err error) {
	var (
		validationErr *errs.ValidationError
		conflictErr   *errs.ConflictError
		stateErr      *errs.StateError
		expiredErr    *errs.ExpiredError
		providerErr   *errs.ProviderError
		notFoundErr   *errs.NotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		RespondJSON(c, "error", http.StatusUnprocessableEntity, validationErr.Msg, nil, nil)
	case errors.As(err, &conflictErr):
		RespondJSON(c, "error", http.StatusConflict, conflictErr.Msg, nil, nil)
	case errors.As(err, &stateErr):
		RespondJSON(c, "error", http.StatusConflict, stateErr.Msg, nil, nil)
	case errors.As(err, &expiredErr):
		RespondJSON(c, "error", http.StatusGone, expiredErr.Msg, nil, nil)
	case errors.As(err, &providerErr):
		RespondJSON(c, "error", http.StatusBadGateway, providerErr.Msg, nil, nil)
	case errors.As(err, &notFoundErr):
		RespondJSON(c, "error", http.StatusNotFound, notFoundErr.Msg, nil, nil)
	case errors.Is(err, gorm.ErrRecordNotFound):
		RespondJSON(c, "error", http.StatusNotFound, "resource not found", nil, nil)
	default:
		RespondJSON(c, "error", http.StatusInternalServerError, "internal server error", nil, map[string]interface{}{
			"details": err.Error(),
		})
	}
}
