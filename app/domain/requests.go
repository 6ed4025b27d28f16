package domain

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest is the login endpoint payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterRequest is the registration endpoint payload.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest exchanges a refresh token for a new credential.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// IdentitySummary is the wire form of an identity inside auth responses.
type IdentitySummary struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	TenantID uuid.UUID `json:"tenant_id,omitempty"`
}

// LoginResponse is returned by login, register and refresh.
type LoginResponse struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time       `json:"expires_at"`
	User         IdentitySummary `json:"user"`
}

// VerifyResponse is returned by the verify endpoint.
type VerifyResponse struct {
	Valid bool             `json:"valid"`
	User  *IdentitySummary `json:"user,omitempty"`
}

// MembershipsResponse lists the caller's memberships and tenants.
type MembershipsResponse struct {
	Memberships []Membership `json:"memberships"`
	Tenants     []Tenant     `json:"tenants"`
}

// SwitchResponse acknowledges a tenant switch.
type SwitchResponse struct {
	TenantID uuid.UUID `json:"tenant_id"`
	Switched bool      `json:"switched"`
}
