package domain

import "errors"

// Authentication and session errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrIdentityExists     = errors.New("identity already exists")
	ErrIdentitySuspended  = errors.New("identity suspended")

	ErrSessionExpired   = errors.New("session expired")
	ErrCredentialAbsent = errors.New("no credential available")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Tenant errors
	ErrTenantNotFound  = errors.New("tenant not found")
	ErrTenantMismatch  = errors.New("tenant not in membership set")
	ErrTenantSuspended = errors.New("tenant suspended")

	// Token errors
	ErrTokenInvalid        = errors.New("invalid token")
	ErrRefreshTokenInvalid = errors.New("invalid refresh token")

	// OAuth errors
	ErrProviderUnknown   = errors.New("unknown identity provider")
	ErrExchangeFailed    = errors.New("provider code exchange failed")
	ErrProviderRejected  = errors.New("provider rejected the authorization")

	// General errors
	ErrInternal = errors.New("internal error")
	ErrConflict = errors.New("resource conflict")
)
