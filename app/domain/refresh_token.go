package domain

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a long-lived, single-use token exchanged for a fresh
// credential. Rotation revokes the old token when a new one is issued.
type RefreshToken struct {
	Token      string     `json:"token"`
	IdentityID uuid.UUID  `json:"identity_id"`
	ExpiresAt  time.Time  `json:"expires_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewRefreshToken mints a refresh token for an identity.
func NewRefreshToken(identityID uuid.UUID, ttl time.Duration) (*RefreshToken, error) {
	if identityID == uuid.Nil {
		return nil, fmt.Errorf("identity ID is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive")
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now()
	return &RefreshToken{
		Token:      base64.RawURLEncoding.EncodeToString(raw),
		IdentityID: identityID,
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
	}, nil
}

// IsValid reports whether the token may still be exchanged.
func (t *RefreshToken) IsValid() bool {
	return t != nil && t.RevokedAt == nil && time.Now().Before(t.ExpiresAt)
}

// Revoke marks the token as spent.
func (t *RefreshToken) Revoke() {
	now := time.Now()
	t.RevokedAt = &now
}

// TokenClaims is the verified content of a credential token.
type TokenClaims struct {
	IdentityID uuid.UUID
	Email      string
	Name       string
	ExpiresAt  time.Time
}

// ProviderProfile is the normalized identity returned by an external
// identity provider after a successful code exchange.
type ProviderProfile struct {
	Provider       string `json:"provider"`
	ProviderUserID string `json:"provider_user_id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	EmailVerified  bool   `json:"email_verified"`
}

// SessionRecord is what the server remembers about an issued credential.
// Deleting the record revokes the credential ahead of its expiry.
type SessionRecord struct {
	Token      string    `json:"token"`
	IdentityID uuid.UUID `json:"identity_id"`
	TenantID   uuid.UUID `json:"tenant_id,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
}
