package domain

import (
	"time"

	"github.com/google/uuid"
)

// LogoutReason explains why a logout event fired.
type LogoutReason string

const (
	// LogoutReasonExpired means the credential's expiry instant passed.
	LogoutReasonExpired LogoutReason = "expired"
	// LogoutReasonRejected means the server refused the credential.
	LogoutReasonRejected LogoutReason = "rejected"
	// LogoutReasonManual means the user asked to log out.
	LogoutReasonManual LogoutReason = "manual"
)

// AuthEventKind tags the event variants carried on the bus.
type AuthEventKind string

const (
	AuthEventLogout        AuthEventKind = "logout"
	AuthEventTenantChanged AuthEventKind = "tenant_changed"
)

// AuthEvent is an immutable lifecycle signal. Logout events are consumed
// at most logically once per underlying cause.
type AuthEvent struct {
	Kind   AuthEventKind `json:"kind"`
	Reason LogoutReason  `json:"reason,omitempty"`

	// Token identifies the credential that caused a logout event, so
	// duplicate rejections of the same credential collapse into one
	// delivered event.
	Token string `json:"-"`

	// TenantID carries the new selection for tenant_changed events.
	TenantID uuid.UUID `json:"tenant_id,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}

// NewLogoutEvent creates a logout event for the given credential token.
func NewLogoutEvent(reason LogoutReason, token string) AuthEvent {
	return AuthEvent{
		Kind:       AuthEventLogout,
		Reason:     reason,
		Token:      token,
		OccurredAt: time.Now(),
	}
}

// NewTenantChangedEvent signals that the active tenant moved.
func NewTenantChangedEvent(tenantID uuid.UUID) AuthEvent {
	return AuthEvent{
		Kind:       AuthEventTenantChanged,
		TenantID:   tenantID,
		OccurredAt: time.Now(),
	}
}
