package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"session-service/app/domain"
	"session-service/app/port"
)

// IdentityGateway implements port.IdentityGateway interface
// It acts as an anti-corruption layer between the domain and identity repository
type IdentityGateway struct {
	identityRepo port.IdentityRepositoryPort
	logger       *slog.Logger
}

// NewIdentityGateway creates a new IdentityGateway instance
func NewIdentityGateway(identityRepo port.IdentityRepositoryPort, logger *slog.Logger) *IdentityGateway {
	return &IdentityGateway{
		identityRepo: identityRepo,
		logger:       logger.With("component", "identity_gateway"),
	}
}

// CreateIdentity creates a new identity in the repository
func (g *IdentityGateway) CreateIdentity(ctx context.Context, identity *domain.Identity) error {
	g.logger.Info("creating identity",
		"identity_id", identity.ID,
		"email", identity.Email)

	if err := g.validateIdentity(identity); err != nil {
		g.logger.Error("identity validation failed",
			"identity_id", identity.ID,
			"error", err)
		return fmt.Errorf("identity validation failed: %w", err)
	}

	if err := g.identityRepo.Create(ctx, identity); err != nil {
		g.logger.Error("failed to create identity",
			"identity_id", identity.ID,
			"error", err)
		return fmt.Errorf("failed to create identity: %w", err)
	}

	g.logger.Info("identity created successfully",
		"identity_id", identity.ID,
		"email", identity.Email)

	return nil
}

// GetIdentityByID retrieves an identity by ID
func (g *IdentityGateway) GetIdentityByID(ctx context.Context, identityID uuid.UUID) (*domain.Identity, error) {
	identity, err := g.identityRepo.GetByID(ctx, identityID)
	if err != nil {
		g.logger.Error("failed to retrieve identity by ID",
			"identity_id", identityID,
			"error", err)
		return nil, fmt.Errorf("failed to retrieve identity by ID: %w", err)
	}
	return identity, nil
}

// GetIdentityByEmail retrieves an identity by email
func (g *IdentityGateway) GetIdentityByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	identity, err := g.identityRepo.GetByEmail(ctx, email)
	if err != nil {
		g.logger.Error("failed to retrieve identity by email",
			"email", email,
			"error", err)
		return nil, fmt.Errorf("failed to retrieve identity by email: %w", err)
	}
	return identity, nil
}

// GetIdentityByProvider retrieves an identity by its provider link
func (g *IdentityGateway) GetIdentityByProvider(ctx context.Context, provider, providerUserID string) (*domain.Identity, error) {
	identity, err := g.identityRepo.GetByProvider(ctx, provider, providerUserID)
	if err != nil {
		g.logger.Error("failed to retrieve identity by provider",
			"provider", provider,
			"error", err)
		return nil, fmt.Errorf("failed to retrieve identity by provider: %w", err)
	}
	return identity, nil
}

// UpdateIdentity updates an existing identity
func (g *IdentityGateway) UpdateIdentity(ctx context.Context, identity *domain.Identity) error {
	g.logger.Info("updating identity",
		"identity_id", identity.ID,
		"email", identity.Email)

	if err := g.validateIdentity(identity); err != nil {
		g.logger.Error("identity validation failed",
			"identity_id", identity.ID,
			"error", err)
		return fmt.Errorf("identity validation failed: %w", err)
	}

	if err := g.identityRepo.Update(ctx, identity); err != nil {
		g.logger.Error("failed to update identity",
			"identity_id", identity.ID,
			"error", err)
		return fmt.Errorf("failed to update identity: %w", err)
	}

	return nil
}

// HashPassword hashes a plaintext password for storage
func (g *IdentityGateway) HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a stored hash.
// Returns domain.ErrInvalidCredentials on mismatch so callers never see
// bcrypt internals.
func (g *IdentityGateway) VerifyPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// validateIdentity validates identity data
func (g *IdentityGateway) validateIdentity(identity *domain.Identity) error {
	if identity == nil {
		return fmt.Errorf("identity cannot be nil")
	}

	if identity.ID == uuid.Nil {
		return fmt.Errorf("identity ID cannot be empty")
	}

	if identity.Email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if identity.Status == "" {
		return fmt.Errorf("identity status cannot be empty")
	}

	// password identities need a hash, provider identities need a link
	if identity.Provider == "" && identity.PasswordHash == "" {
		return fmt.Errorf("password identity requires a password hash")
	}
	if identity.Provider != "" && identity.ProviderUserID == "" {
		return fmt.Errorf("provider identity requires a provider user ID")
	}

	return nil
}
