package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"session-service/app/domain"
	"session-service/app/port"
)

// TenantRepository implements port.TenantRepositoryPort for PostgreSQL
type TenantRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewTenantRepository creates a new PostgreSQL tenant repository
func NewTenantRepository(db DatabaseIface, logger *slog.Logger) port.TenantRepositoryPort {
	return &TenantRepository{
		db:     db,
		logger: logger.With("component", "tenant_repository"),
	}
}

const tenantColumns = `id, slug, name, domain, status, max_users, max_concurrent_ops, budget_ceiling, created_at, updated_at, deleted_at`

// Create creates a new tenant in the database
func (r *TenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	query := `
		INSERT INTO tenants (
			id, slug, name, domain, status, max_users, max_concurrent_ops, budget_ceiling, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)`

	r.logger.Info("creating tenant", "tenant_id", tenant.ID, "slug", tenant.Slug)

	_, err := r.db.Exec(ctx, query,
		tenant.ID,
		tenant.Slug,
		tenant.Name,
		tenant.Domain,
		tenant.Status,
		tenant.Quotas.MaxUsers,
		tenant.Quotas.MaxConcurrentOps,
		tenant.Quotas.BudgetCeiling,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("failed to create tenant", "tenant_id", tenant.ID, "error", err)
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	return nil
}

// GetByID retrieves a tenant by ID
func (r *TenantRepository) GetByID(ctx context.Context, tenantID uuid.UUID) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1 AND deleted_at IS NULL`
	return r.scanTenant(r.db.QueryRow(ctx, query, tenantID))
}

// GetBySlug retrieves a tenant by slug
func (r *TenantRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE slug = $1 AND deleted_at IS NULL`
	return r.scanTenant(r.db.QueryRow(ctx, query, slug))
}

// Update updates a tenant in the database
func (r *TenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	query := `
		UPDATE tenants SET
			slug = $2, name = $3, domain = $4, status = $5,
			max_users = $6, max_concurrent_ops = $7, budget_ceiling = $8,
			updated_at = $9, deleted_at = $10
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		tenant.ID,
		tenant.Slug,
		tenant.Name,
		tenant.Domain,
		tenant.Status,
		tenant.Quotas.MaxUsers,
		tenant.Quotas.MaxConcurrentOps,
		tenant.Quotas.BudgetCeiling,
		tenant.UpdatedAt,
		tenant.DeletedAt,
	)

	if err != nil {
		r.logger.Error("failed to update tenant", "tenant_id", tenant.ID, "error", err)
		return fmt.Errorf("failed to update tenant: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}

	return nil
}

// AddMembership grants an identity access to a tenant
func (r *TenantRepository) AddMembership(ctx context.Context, membership *domain.Membership) error {
	query := `
		INSERT INTO memberships (
			identity_id, tenant_id, role, created_at
		) VALUES (
			$1, $2, $3, $4
		)`

	r.logger.Info("adding membership",
		"identity_id", membership.IdentityID,
		"tenant_id", membership.TenantID,
		"role", membership.Role)

	_, err := r.db.Exec(ctx, query,
		membership.IdentityID,
		membership.TenantID,
		membership.Role,
		membership.CreatedAt,
	)

	if err != nil {
		r.logger.Error("failed to add membership",
			"identity_id", membership.IdentityID,
			"tenant_id", membership.TenantID,
			"error", err)
		return fmt.Errorf("failed to add membership: %w", err)
	}

	return nil
}

// RemoveMembership revokes an identity's access to a tenant
func (r *TenantRepository) RemoveMembership(ctx context.Context, identityID, tenantID uuid.UUID) error {
	query := `DELETE FROM memberships WHERE identity_id = $1 AND tenant_id = $2`

	result, err := r.db.Exec(ctx, query, identityID, tenantID)
	if err != nil {
		r.logger.Error("failed to remove membership",
			"identity_id", identityID,
			"tenant_id", tenantID,
			"error", err)
		return fmt.Errorf("failed to remove membership: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTenantMismatch
	}

	return nil
}

// ListByIdentity loads the membership set of an identity, joined with
// the tenants the memberships point at. Suspended and deleted tenants
// are excluded so they never show up as switch targets.
func (r *TenantRepository) ListByIdentity(ctx context.Context, identityID uuid.UUID) (*domain.MembershipSet, error) {
	query := `
		SELECT
			m.identity_id, m.tenant_id, m.role, m.created_at,
			t.id, t.slug, t.name, t.domain, t.status,
			t.max_users, t.max_concurrent_ops, t.budget_ceiling,
			t.created_at, t.updated_at, t.deleted_at
		FROM memberships m
		JOIN tenants t ON t.id = m.tenant_id
		WHERE m.identity_id = $1 AND t.status = 'active' AND t.deleted_at IS NULL
		ORDER BY m.created_at ASC`

	rows, err := r.db.Query(ctx, query, identityID)
	if err != nil {
		r.logger.Error("failed to list memberships", "identity_id", identityID, "error", err)
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	set := &domain.MembershipSet{}
	for rows.Next() {
		var m domain.Membership
		var t domain.Tenant
		err := rows.Scan(
			&m.IdentityID, &m.TenantID, &m.Role, &m.CreatedAt,
			&t.ID, &t.Slug, &t.Name, &t.Domain, &t.Status,
			&t.Quotas.MaxUsers, &t.Quotas.MaxConcurrentOps, &t.Quotas.BudgetCeiling,
			&t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan membership row", "error", err)
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		set.Memberships = append(set.Memberships, m)
		set.Tenants = append(set.Tenants, t)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating membership rows", "error", err)
		return nil, fmt.Errorf("error iterating memberships: %w", err)
	}

	return set, nil
}

// CountMembers counts the members of a tenant, used for quota checks
func (r *TenantRepository) CountMembers(ctx context.Context, tenantID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM memberships WHERE tenant_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, tenantID).Scan(&count); err != nil {
		r.logger.Error("failed to count members", "tenant_id", tenantID, "error", err)
		return 0, fmt.Errorf("failed to count members: %w", err)
	}

	return count, nil
}

func (r *TenantRepository) scanTenant(row pgx.Row) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := row.Scan(
		&tenant.ID,
		&tenant.Slug,
		&tenant.Name,
		&tenant.Domain,
		&tenant.Status,
		&tenant.Quotas.MaxUsers,
		&tenant.Quotas.MaxConcurrentOps,
		&tenant.Quotas.BudgetCeiling,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
		&tenant.DeletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTenantNotFound
		}
		r.logger.Error("failed to scan tenant", "error", err)
		return nil, fmt.Errorf("failed to scan tenant: %w", err)
	}

	return &tenant, nil
}
