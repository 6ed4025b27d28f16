package port

//go:generate mockgen -source=identity_port.go -destination=../mocks/mock_identity_port.go

import (
	"context"

	"github.com/google/uuid"

	"session-service/app/domain"
)

// IdentityGateway defines identity gateway interface
type IdentityGateway interface {
	CreateIdentity(ctx context.Context, identity *domain.Identity) error
	GetIdentityByID(ctx context.Context, identityID uuid.UUID) (*domain.Identity, error)
	GetIdentityByEmail(ctx context.Context, email string) (*domain.Identity, error)
	GetIdentityByProvider(ctx context.Context, provider, providerUserID string) (*domain.Identity, error)
	UpdateIdentity(ctx context.Context, identity *domain.Identity) error

	// Password handling
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) error
}

// IdentityRepositoryPort defines identity data access interface
type IdentityRepositoryPort interface {
	Create(ctx context.Context, identity *domain.Identity) error
	GetByID(ctx context.Context, identityID uuid.UUID) (*domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	GetByProvider(ctx context.Context, provider, providerUserID string) (*domain.Identity, error)
	Update(ctx context.Context, identity *domain.Identity) error
	Delete(ctx context.Context, identityID uuid.UUID) error
}
