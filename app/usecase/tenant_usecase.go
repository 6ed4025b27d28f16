package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"session-service/app/domain"
	"session-service/app/port"
)

// TenantUseCase implements tenant authorization business logic
type TenantUseCase struct {
	tenantRepo port.TenantRepositoryPort
	records    port.SessionRecordStore
	logger     *slog.Logger
}

// NewTenantUseCase creates a new TenantUseCase instance
func NewTenantUseCase(
	tenantRepo port.TenantRepositoryPort,
	records port.SessionRecordStore,
	logger *slog.Logger,
) *TenantUseCase {
	return &TenantUseCase{
		tenantRepo: tenantRepo,
		records:    records,
		logger:     logger.With("component", "tenant_usecase"),
	}
}

// ListMemberships returns the memberships of an identity together with
// the tenants they grant access to.
func (uc *TenantUseCase) ListMemberships(ctx context.Context, identityID uuid.UUID) (*domain.MembershipsResponse, error) {
	set, err := uc.tenantRepo.ListByIdentity(ctx, identityID)
	if err != nil {
		return nil, err
	}

	return &domain.MembershipsResponse{
		Memberships: set.Memberships,
		Tenants:     set.Tenants,
	}, nil
}

// SwitchTenant changes the active tenant on a session record. The
// target must be inside the identity's membership set; a switch to any
// other tenant is refused without touching the record.
func (uc *TenantUseCase) SwitchTenant(ctx context.Context, identityID uuid.UUID, tokenString string, tenantID uuid.UUID) (*domain.SwitchResponse, error) {
	set, err := uc.tenantRepo.ListByIdentity(ctx, identityID)
	if err != nil {
		return nil, err
	}

	if !set.Contains(tenantID) {
		uc.logger.Warn("switch to tenant outside membership set refused",
			"identity_id", identityID,
			"tenant_id", tenantID)
		return nil, domain.ErrTenantMismatch
	}

	tenant := set.TenantByID(tenantID)
	if tenant == nil || !tenant.IsActive() {
		return nil, domain.ErrTenantSuspended
	}

	if err := uc.records.SetTenant(ctx, tokenString, tenantID); err != nil {
		return nil, fmt.Errorf("failed to update session record: %w", err)
	}

	uc.logger.Info("tenant switched",
		"identity_id", identityID,
		"tenant_id", tenantID)

	return &domain.SwitchResponse{
		TenantID: tenantID,
		Switched: true,
	}, nil
}

// CreateTenant provisions a tenant and makes the creator its owner
func (uc *TenantUseCase) CreateTenant(ctx context.Context, slug, name string, ownerID uuid.UUID) (*domain.Tenant, error) {
	if existing, err := uc.tenantRepo.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: slug %q taken", domain.ErrConflict, slug)
	}

	tenant, err := domain.NewTenant(slug, name)
	if err != nil {
		return nil, err
	}

	if err := uc.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	membership := &domain.Membership{
		IdentityID: ownerID,
		TenantID:   tenant.ID,
		Role:       domain.MembershipRoleOwner,
		CreatedAt:  time.Now(),
	}
	if err := uc.tenantRepo.AddMembership(ctx, membership); err != nil {
		return nil, fmt.Errorf("failed to add owner membership: %w", err)
	}

	uc.logger.Info("tenant created",
		"tenant_id", tenant.ID,
		"slug", tenant.Slug,
		"owner_id", ownerID)
	return tenant, nil
}

// GetTenantByID resolves a tenant
func (uc *TenantUseCase) GetTenantByID(ctx context.Context, tenantID uuid.UUID) (*domain.Tenant, error) {
	return uc.tenantRepo.GetByID(ctx, tenantID)
}

// AddMember grants an identity membership in a tenant, enforcing the
// tenant's user quota.
func (uc *TenantUseCase) AddMember(ctx context.Context, tenantID, identityID uuid.UUID, role domain.MembershipRole) error {
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if !tenant.IsActive() {
		return domain.ErrTenantSuspended
	}

	count, err := uc.tenantRepo.CountMembers(ctx, tenantID)
	if err != nil {
		return err
	}
	if tenant.Quotas.MaxUsers > 0 && count >= tenant.Quotas.MaxUsers {
		return fmt.Errorf("%w: member quota reached (%d)", domain.ErrForbidden, tenant.Quotas.MaxUsers)
	}

	return uc.tenantRepo.AddMembership(ctx, &domain.Membership{
		IdentityID: identityID,
		TenantID:   tenantID,
		Role:       role,
		CreatedAt:  time.Now(),
	})
}
