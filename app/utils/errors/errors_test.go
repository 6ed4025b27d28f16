package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeIdentityNotFound, "identity not found"),
			expected: "IDENTITY_NOT_FOUND: identity not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeDatabaseError, "database error", errors.New("connection failed")),
			expected: "DATABASE_ERROR: database error (caused by: connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	err := Wrap(ErrCodeInternalError, "wrapped error", cause)

	unwrapped := errors.Unwrap(err)
	assert.Equal(t, cause, unwrapped)
}

func TestAppError_WithContext(t *testing.T) {
	err := New(ErrCodeTenantMismatch, "tenant is not in your membership set")
	err.WithContext("tenant_id", "123")
	err.WithContext("identity_id", "456")

	assert.Equal(t, "123", err.Context["tenant_id"])
	assert.Equal(t, "456", err.Context["identity_id"])
}

func TestAppError_WithDetails(t *testing.T) {
	err := New(ErrCodeValidationFailed, "validation failed")
	err.WithDetails("email field is required")

	assert.Equal(t, "email field is required", err.Details)
}

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		code   ErrorCode
		status int
	}{
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeSessionExpired, http.StatusUnauthorized},
		{ErrCodeTenantMismatch, http.StatusForbidden},
		{ErrCodeOAuthExchangeFailed, http.StatusBadRequest},
		{ErrCodeNetworkError, http.StatusServiceUnavailable},
		{ErrCodeIdentityNotFound, http.StatusNotFound},
		{ErrCodeIdentityExists, http.StatusConflict},
		{ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{ErrCodeDatabaseError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, New(tt.code, "msg").StatusCode)
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrCodeNotFound, "%s not found", "tenant")
	assert.Equal(t, "tenant not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
}

func TestAsAppError(t *testing.T) {
	appErr := New(ErrCodeSessionExpired, "expired")
	wrapped := fmt.Errorf("request failed: %w", appErr)

	got, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeSessionExpired, got.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeTenantMismatch, GetErrorCode(NewTenantMismatch("t-1")))
	assert.Equal(t, ErrCodeInternalError, GetErrorCode(errors.New("plain")))
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrSessionExpired)
	assert.True(t, HasCode(err, ErrCodeSessionExpired))
	assert.False(t, HasCode(err, ErrCodeInvalidCredentials))
}

func TestGetHTTPStatusCode_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatusCode(errors.New("plain")))
}
