package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-service/app/domain"
	"session-service/app/utils/logger"
)

func createTestTenantRepository(t *testing.T) (*TenantRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	repo := NewTenantRepository(mockDB, testLogger).(*TenantRepository)
	return repo, mockDB
}

func createTestTenant(t *testing.T, slug string) *domain.Tenant {
	t.Helper()

	tenant, err := domain.NewTenant(slug, "Tenant "+slug)
	require.NoError(t, err)
	return tenant
}

func tenantRow(tenant *domain.Tenant) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "slug", "name", "domain", "status",
		"max_users", "max_concurrent_ops", "budget_ceiling",
		"created_at", "updated_at", "deleted_at",
	}).AddRow(
		tenant.ID, tenant.Slug, tenant.Name, tenant.Domain, tenant.Status,
		tenant.Quotas.MaxUsers, tenant.Quotas.MaxConcurrentOps, tenant.Quotas.BudgetCeiling,
		tenant.CreatedAt, tenant.UpdatedAt, tenant.DeletedAt,
	)
}

func TestTenantRepository_Create(t *testing.T) {
	repo, mockDB := createTestTenantRepository(t)
	defer mockDB.Close()

	tenant := createTestTenant(t, "vyomtech")
	mockDB.ExpectExec("INSERT INTO tenants").
		WithArgs(
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
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), tenant))
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestTenantRepository_GetByID(t *testing.T) {
	repo, mockDB := createTestTenantRepository(t)
	defer mockDB.Close()

	tenant := createTestTenant(t, "vyomtech")
	mockDB.ExpectQuery("SELECT (.+) FROM tenants WHERE id").
		WithArgs(tenant.ID).
		WillReturnRows(tenantRow(tenant))

	got, err := repo.GetByID(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, tenant.Slug, got.Slug)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestTenantRepository_GetByID_NotFound(t *testing.T) {
	repo, mockDB := createTestTenantRepository(t)
	defer mockDB.Close()

	unknownID := uuid.New()
	mockDB.ExpectQuery("SELECT (.+) FROM tenants WHERE id").
		WithArgs(unknownID).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), unknownID)
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestTenantRepository_AddMembership(t *testing.T) {
	repo, mockDB := createTestTenantRepository(t)
	defer mockDB.Close()

	membership := &domain.Membership{
		IdentityID: uuid.New(),
		TenantID:   uuid.New(),
		Role:       domain.MembershipRoleMember,
		CreatedAt:  time.Now(),
	}

	mockDB.ExpectExec("INSERT INTO memberships").
		WithArgs(membership.IdentityID, membership.TenantID, membership.Role, membership.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.AddMembership(context.Background(), membership))
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestTenantRepository_ListByIdentity(t *testing.T) {
	repo, mockDB := createTestTenantRepository(t)
	defer mockDB.Close()

	identityID := uuid.New()
	alpha := createTestTenant(t, "alpha")
	beta := createTestTenant(t, "beta")
	now := time.Now()

	rows := pgxmock.NewRows([]string{
		"identity_id", "tenant_id", "role", "m_created_at",
		"id", "slug", "name", "domain", "status",
		"max_users", "max_concurrent_ops", "budget_ceiling",
		"created_at", "updated_at", "deleted_at",
	}).AddRow(
		identityID, alpha.ID, domain.MembershipRoleOwner, now,
		alpha.ID, alpha.Slug, alpha.Name, alpha.Domain, alpha.Status,
		alpha.Quotas.MaxUsers, alpha.Quotas.MaxConcurrentOps, alpha.Quotas.BudgetCeiling,
		alpha.CreatedAt, alpha.UpdatedAt, alpha.DeletedAt,
	).AddRow(
		identityID, beta.ID, domain.MembershipRoleMember, now,
		beta.ID, beta.Slug, beta.Name, beta.Domain, beta.Status,
		beta.Quotas.MaxUsers, beta.Quotas.MaxConcurrentOps, beta.Quotas.BudgetCeiling,
		beta.CreatedAt, beta.UpdatedAt, beta.DeletedAt,
	)

	mockDB.ExpectQuery("SELECT(.+)FROM memberships m(.+)JOIN tenants t").
		WithArgs(identityID).
		WillReturnRows(rows)

	set, err := repo.ListByIdentity(context.Background(), identityID)
	require.NoError(t, err)
	require.Len(t, set.Memberships, 2)
	require.Len(t, set.Tenants, 2)
	assert.Equal(t, alpha.ID, set.First())
	assert.True(t, set.Contains(beta.ID))
	assert.False(t, set.Contains(uuid.New()))
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestTenantRepository_ListByIdentity_Empty(t *testing.T) {
	repo, mockDB := createTestTenantRepository(t)
	defer mockDB.Close()

	identityID := uuid.New()
	mockDB.ExpectQuery("SELECT(.+)FROM memberships m(.+)JOIN tenants t").
		WithArgs(identityID).
		WillReturnRows(pgxmock.NewRows([]string{
			"identity_id", "tenant_id", "role", "m_created_at",
			"id", "slug", "name", "domain", "status",
			"max_users", "max_concurrent_ops", "budget_ceiling",
			"created_at", "updated_at", "deleted_at",
		}))

	set, err := repo.ListByIdentity(context.Background(), identityID)
	require.NoError(t, err)
	assert.Empty(t, set.Memberships)
	assert.Equal(t, uuid.Nil, set.First())
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestTenantRepository_CountMembers(t *testing.T) {
	repo, mockDB := createTestTenantRepository(t)
	defer mockDB.Close()

	tenantID := uuid.New()
	mockDB.ExpectQuery("SELECT COUNT(.+) FROM memberships").
		WithArgs(tenantID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountMembers(context.Background(), tenantID)
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}
