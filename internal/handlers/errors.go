package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"go.uber.org/zap"
)

// respondServiceError maps a service error onto the API error envelope.
// Unknown errors are logged and hidden behind a generic 500.
func respondServiceError(c *gin.Context, err error) {
	var (
		validation *apierrors.ValidationError
		notFound   *apierrors.NotFoundError
		conflict   *apierrors.ConflictError
	)

	switch {
	case errors.As(err, &validation):
		apierrors.ValidationFailed(c, validation.Message(), validation.Fields)
	case errors.As(err, &notFound):
		apierrors.NotFound(c, notFound.Error())
	case errors.As(err, &conflict):
		apierrors.Conflict(c, conflict.Message)
	default:
		zap.L().Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		apierrors.InternalError(c, "")
	}
}

func invalidBody(c *gin.Context) {
	apierrors.BadRequest(c, "Invalid request body")
}
