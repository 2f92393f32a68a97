package httpapi

import (
	"errors"
	"net/http"

	"github.com/dbelyaeva/fitlog/internal/common"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: message})
}

// respondError translates service errors into HTTP statuses. Anything
// not in the taxonomy is logged and hidden behind a generic 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		newErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorConflict):
		newErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		newErrorResponse(c, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		newErrorResponse(c, http.StatusUnauthorized, "unauthorized")
	default:
		h.logger.Error(c.Request.Context(), "request failed", "error", err.Error(), "path", c.FullPath())
		newErrorResponse(c, http.StatusInternalServerError, "internal error")
	}
}
