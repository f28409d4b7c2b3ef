package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "timeclock/internal/errors"
	"timeclock/internal/logger"
)

// ErrorHandler converts errors attached to the Gin context into the flat
// {"error": message, "code": CODE} body used across the API. Handlers that
// already wrote a response are left alone.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"code", appErr.Code,
					"message", appErr.Message,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
					"request_id", RequestID(c),
				)
			}
			c.JSON(appErr.StatusCode, gin.H{"error": appErr.Message, "code": appErr.Code})
			return
		}

		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", RequestID(c),
		)
		writeInternal(c)
	}
}

// Recovery turns a handler panic into a 500 with the standard error body.
// The panic is scoped to the request; the process keeps serving.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Get().Errorw("panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", RequestID(c),
		)
		writeInternal(c)
		c.Abort()
	})
}

func writeInternal(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": apperrors.ErrInternalServer.Message,
		"code":  apperrors.ErrInternalServer.Code,
	})
}
