package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/emirkaya/schoolhub/internal/app/models/dto"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
	"github.com/emirkaya/schoolhub/internal/pkg/logger"
)

// HandleAPIError maps domain errors to HTTP responses. Controllers hand
// every service error to this single place so status codes stay consistent.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrInvalidFormat),
		errors.Is(err, apperrors.ErrInvalidEmail),
		errors.Is(err, apperrors.ErrInvalidPassword),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrTeacherIDMissing),
		errors.Is(err, apperrors.ErrGradeOutOfBounds):
		c.JSON(400, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, errorMessage(err, "Validation failed")))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.NewErrorResponse(dto.ErrorCodeInvalidCredentials, "Invalid email or password"))

	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.NewErrorResponse(dto.ErrorCodeExpiredToken, "Session has expired"))

	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenNotFound):
		c.JSON(401, dto.NewErrorResponse(dto.ErrorCodeInvalidToken, "Invalid session token"))

	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(401, dto.NewErrorResponse(dto.ErrorCodeAccountDisabled, "Account is disabled"))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.NewErrorResponse(dto.ErrorCodeForbidden, "Permission denied"))

	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrTeacherNotFound),
		errors.Is(err, apperrors.ErrClassNotFound),
		errors.Is(err, apperrors.ErrSubjectNotFound),
		errors.Is(err, apperrors.ErrEnrollmentNotFound),
		errors.Is(err, apperrors.ErrGradeNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.ErrorCodeResourceNotFound, errorMessage(err, "Resource not found")))

	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrClassNameExists),
		errors.Is(err, apperrors.ErrSubjectNameExists),
		errors.Is(err, apperrors.ErrAlreadyEnrolled):
		c.JSON(409, dto.NewErrorResponse(dto.ErrorCodeResourceAlreadyExists, errorMessage(err, "Resource already exists")))

	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrClassNotActive),
		errors.Is(err, apperrors.ErrTeacherHasClasses),
		errors.Is(err, apperrors.ErrEnrollmentHasGrades):
		c.JSON(409, dto.NewErrorResponse(dto.ErrorCodeResourceConflict, errorMessage(err, "Conflict")))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(500, dto.NewErrorResponse(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}

// errorMessage prefers a CustomError's message over the generic fallback.
func errorMessage(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
