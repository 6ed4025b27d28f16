package domain

import (
	"github.com/google/uuid"
)

// SessionState is the committed authentication state.
type SessionState string

const (
	// StateUnauthenticated means no valid credential is held.
	StateUnauthenticated SessionState = "unauthenticated"
	// StateVerifying is the transient startup state while a persisted
	// credential is being confirmed with the server. It is never
	// observable as a committed session.
	StateVerifying SessionState = "verifying"
	// StateAuthenticated means a valid credential is held and confirmed.
	StateAuthenticated SessionState = "authenticated"
)

// Session is the derived session view. It is recomputed from the current
// credential and tenant selection on every read and never persisted on
// its own; persisting it separately would let two copies disagree.
type Session struct {
	IdentityID    uuid.UUID `json:"identity_id"`
	TenantID      uuid.UUID `json:"tenant_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Authenticated bool      `json:"authenticated"`
}

// Anonymous is the session view when no credential is held.
func Anonymous() Session {
	return Session{Authenticated: false}
}

// DeriveSession computes the session view from a credential, a resolved
// identity and the active tenant selection. A nil or invalid credential
// yields the anonymous session.
func DeriveSession(cred *Credential, identity *Identity, tenantID uuid.UUID) Session {
	if !cred.IsValid() {
		return Anonymous()
	}

	s := Session{
		IdentityID:    cred.IdentityID,
		TenantID:      tenantID,
		Authenticated: true,
	}
	if identity != nil {
		s.Email = identity.Email
		s.Name = identity.Name
	}
	return s
}
