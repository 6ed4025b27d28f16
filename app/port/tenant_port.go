package port

//go:generate mockgen -source=tenant_port.go -destination=../mocks/mock_tenant_port.go

import (
	"context"

	"github.com/google/uuid"

	"session-service/app/domain"
)

// TenantUsecase defines tenant authorization business logic interface
type TenantUsecase interface {
	// Membership queries
	ListMemberships(ctx context.Context, identityID uuid.UUID) (*domain.MembershipsResponse, error)

	// Tenant switching. The token identifies the session record whose
	// active tenant changes on success.
	SwitchTenant(ctx context.Context, identityID uuid.UUID, tokenString string, tenantID uuid.UUID) (*domain.SwitchResponse, error)

	// Tenant management
	CreateTenant(ctx context.Context, slug, name string, ownerID uuid.UUID) (*domain.Tenant, error)
	GetTenantByID(ctx context.Context, tenantID uuid.UUID) (*domain.Tenant, error)
}

// TenantRepositoryPort defines tenant data access interface
type TenantRepositoryPort interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, tenantID uuid.UUID) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error

	// Memberships
	AddMembership(ctx context.Context, membership *domain.Membership) error
	RemoveMembership(ctx context.Context, identityID, tenantID uuid.UUID) error
	ListByIdentity(ctx context.Context, identityID uuid.UUID) (*domain.MembershipSet, error)
	CountMembers(ctx context.Context, tenantID uuid.UUID) (int, error)
}
