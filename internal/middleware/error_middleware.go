package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emrekoc/campushire/internal/app/models/dto"
	"github.com/emrekoc/campushire/internal/pkg/apperrors"
	"github.com/emrekoc/campushire/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the wire. Authentication and
// authorization failures use 401/403; business-rule rejections (lifecycle,
// duplicates, closed postings) come back as HTTP 200 with success=false, the
// contract the clients already speak; infrastructure failures are 5xx.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))

	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Account is disabled")))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid email or password")))

	case errors.Is(err, apperrors.ErrScopeMismatch):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeScopeMismatch, "Resource belongs to another college")))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, messageOf(err, "Permission denied"))))

	case errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(http.StatusOK, dto.NewFailureResponse(dto.ErrorCodeInvalidTransition,
			messageOf(err, "Invalid application state transition")))

	case errors.Is(err, apperrors.ErrDuplicateApplication):
		c.JSON(http.StatusOK, dto.NewFailureResponse(dto.ErrorCodeDuplicateApplication,
			"You have already applied to this job"))

	case errors.Is(err, apperrors.ErrJobClosed):
		c.JSON(http.StatusOK, dto.NewFailureResponse(dto.ErrorCodeJobClosed,
			"This job posting is no longer accepting applications"))

	case errors.Is(err, apperrors.ErrCollegeAlreadyExists):
		c.JSON(http.StatusOK, dto.NewFailureResponse(dto.ErrorCodeResourceAlreadyExists,
			"A college with this name or contact email already exists"))

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusOK, dto.NewFailureResponse(dto.ErrorCodeResourceAlreadyExists,
			"Email already exists"))

	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusOK, dto.NewFailureResponse(dto.ErrorCodeResourceAlreadyExists,
			messageOf(err, "Conflicting request")))

	case errors.Is(err, apperrors.ErrBadRequest), errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, messageOf(err, "Invalid request"))))

	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrCollegeNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrJobNotFound),
		errors.Is(err, apperrors.ErrApplicationNotFound),
		errors.Is(err, apperrors.ErrInterviewNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, messageOf(err, "Resource not found"))))

	case errors.Is(err, apperrors.ErrTransient):
		logger.Warn().Err(err).Str("path", c.FullPath()).Msg("Transient storage failure")
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeTransient, "Temporary failure, please retry")))

	case errors.Is(err, apperrors.ErrConsistency):
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Internal consistency violation")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

// messageOf prefers the wrapped message when the service attached one
func messageOf(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
