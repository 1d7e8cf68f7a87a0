package utils

import (
	"context"
	"decide-backend/internal/models"
	"decide-backend/pkg/logger"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorStatus maps an error to its HTTP status code.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.BadParameterError):
		return http.StatusBadRequest
	case errors.Is(err, models.UnAuthorizedError):
		return http.StatusUnauthorized
	case errors.Is(err, models.ForbiddenError):
		return http.StatusForbidden
	case errors.Is(err, models.NotFoundError):
		return http.StatusNotFound
	case errors.Is(err, models.ConflictError):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the error envelope for err. Unexpected errors are
// logged and their details are kept out of the response body.
func RespondError(c *gin.Context, err error) {
	status := ErrorStatus(err)
	message := err.Error()
	if status == http.StatusRequestTimeout {
		message = "Request timeout"
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		logger.Log.Error("Unexpected error",
			zap.Error(err),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("RequestID")),
		)
		message = "Internal server error"
	}
	c.JSON(status, NewErrorResponse(status, message))
}
