package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emirkaya/schoolhub/internal/app/models/dto"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"validation", apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"grade bounds", apperrors.ErrGradeOutOfBounds, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"missing teacher id", apperrors.ErrTeacherIDMissing, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"invalid email", apperrors.ErrInvalidEmail, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"invalid password", apperrors.ErrInvalidPassword, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"invalid token", apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"disabled account", apperrors.ErrAccountDisabled, http.StatusUnauthorized, dto.ErrorCodeAccountDisabled},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"enrollment not found", apperrors.ErrEnrollmentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"already enrolled", apperrors.ErrAlreadyEnrolled, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"inactive class", apperrors.ErrClassNotActive, http.StatusConflict, dto.ErrorCodeResourceConflict},
		{"teacher owns classes", apperrors.ErrTeacherHasClasses, http.StatusConflict, dto.ErrorCodeResourceConflict},
		{"enrollment has grades", apperrors.ErrEnrollmentHasGrades, http.StatusConflict, dto.ErrorCodeResourceConflict},
		{"unknown", assert.AnError, http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestHandleAPIErrorWrappedMessage(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	err := apperrors.NewCustomError(apperrors.ErrGradeOutOfBounds, "grade value 9 is outside the allowed range 1..6")
	HandleAPIError(c, err)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "grade value 9 is outside the allowed range 1..6", resp.Error.Message)
}
