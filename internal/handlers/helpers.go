package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "timeclock/internal/errors"
	"timeclock/internal/logger"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Error string `json:"error" example:"type is required"`
	Code  string `json:"code" example:"INVALID_INPUT"`
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: appErr.Message, Code: appErr.Code})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{
		Error: apperrors.ErrInternalServer.Message,
		Code:  apperrors.ErrInternalServer.Code,
	})
}

// bindingError turns a request binding failure into a client-facing error
// naming the first offending field.
func bindingError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid request")
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fe.Field()+" is required")
	case "log_type":
		return apperrors.WithMessage(apperrors.ErrInvalidLogType, fe.Field()+" must be IN or OUT")
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fe.Field()+" is invalid")
	}
}
