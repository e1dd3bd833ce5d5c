package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/logger"
)

// HandleAPIError maps a service error to its HTTP status and error code
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classifyError(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("requestId", c.GetString(requestIDKey)).
			Msg("Unhandled API error")
	}
	c.JSON(status, dto.NewFailureResponse(detail))
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	var validationErr *apperrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity,
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(validationErr.Messages)
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusUnprocessableEntity, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, err.Error())

	case apperrors.IsNotFound(err):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())

	case errors.Is(err, apperrors.ErrAlreadyApplied):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeAlreadyApplied, "You have already applied to this job")
	case errors.Is(err, apperrors.ErrDeadlinePassed):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeDeadlinePassed, "The application deadline has passed")
	case errors.Is(err, apperrors.ErrJobInactive):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeJobInactive, "This job is not accepting applications")
	case apperrors.Is(err, apperrors.ErrConflict, apperrors.ErrResourceAlreadyExists, apperrors.ErrSnapshotWritten):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, err.Error())

	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")

	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
