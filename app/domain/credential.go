package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Credential is the token-plus-identity record proving an authenticated
// session. A credential is either absent or complete; a partially filled
// credential must never be observable.
type Credential struct {
	Token        string    `json:"token"`
	IdentityID   uuid.UUID `json:"identity_id"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// NewCredential creates a credential with validation.
func NewCredential(token string, identityID uuid.UUID, expiresAt time.Time) (*Credential, error) {
	if token == "" {
		return nil, fmt.Errorf("token is required")
	}

	if identityID == uuid.Nil {
		return nil, fmt.Errorf("identity ID is required")
	}

	if expiresAt.IsZero() {
		return nil, fmt.Errorf("expiry is required")
	}

	return &Credential{
		Token:      token,
		IdentityID: identityID,
		ExpiresAt:  expiresAt,
	}, nil
}

// WithRefreshToken attaches a refresh token to the credential.
func (c *Credential) WithRefreshToken(refreshToken string) *Credential {
	c.RefreshToken = refreshToken
	return c
}

// IsExpired returns true if the credential's expiry instant has passed.
func (c *Credential) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// IsValid returns true if the credential is complete and not expired.
// An expired credential is treated the same as an absent one.
func (c *Credential) IsValid() bool {
	return c != nil && c.Token != "" && c.IdentityID != uuid.Nil && !c.IsExpired()
}

// ExpiringSoon reports whether the credential expires within the given
// window. Embedders can use this to trigger an explicit refresh; no
// automatic refresh is performed.
func (c *Credential) ExpiringSoon(window time.Duration) bool {
	return time.Now().Add(window).After(c.ExpiresAt)
}

// RemainingLifetime returns the time until expiry, zero if already expired.
func (c *Credential) RemainingLifetime() time.Duration {
	if c.IsExpired() {
		return 0
	}
	return time.Until(c.ExpiresAt)
}
