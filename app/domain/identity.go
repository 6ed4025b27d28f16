package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IdentityStatus represents the status of an identity
type IdentityStatus string

const (
	IdentityStatusActive    IdentityStatus = "active"
	IdentityStatusInactive  IdentityStatus = "inactive"
	IdentityStatusSuspended IdentityStatus = "suspended"
)

// Identity represents an authenticated principal. An identity may belong
// to several tenants through memberships.
type Identity struct {
	ID           uuid.UUID      `json:"id"`
	Email        string         `json:"email"`
	Name         string         `json:"name"`
	PasswordHash string         `json:"-"`
	Status       IdentityStatus `json:"status"`

	// Provider link for identities created through an external
	// identity provider. Empty for password identities.
	Provider       string `json:"provider,omitempty"`
	ProviderUserID string `json:"provider_user_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewIdentity creates a password identity with validation.
func NewIdentity(email, name string) (*Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	now := time.Now()
	return &Identity{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		Status:    IdentityStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewProviderIdentity creates an identity resolved from an external
// identity provider.
func NewProviderIdentity(provider, providerUserID, email, name string) (*Identity, error) {
	if provider == "" || providerUserID == "" {
		return nil, fmt.Errorf("provider and provider user ID are required")
	}

	identity, err := NewIdentity(email, name)
	if err != nil {
		return nil, err
	}

	identity.Provider = provider
	identity.ProviderUserID = providerUserID
	return identity, nil
}

// IsActive returns true if the identity may authenticate.
func (i *Identity) IsActive() bool {
	return i.Status == IdentityStatusActive
}

// Suspend marks the identity as suspended.
func (i *Identity) Suspend() {
	i.Status = IdentityStatusSuspended
	i.UpdatedAt = time.Now()
}
