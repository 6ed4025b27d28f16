package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenant(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		tname   string
		wantErr bool
	}{
		{"valid tenant", "acme-corp", "Acme Corp", false},
		{"empty slug", "", "Acme Corp", true},
		{"uppercase slug", "Acme", "Acme Corp", true},
		{"slug with spaces", "acme corp", "Acme Corp", true},
		{"empty name", "acme-corp", "", true},
		{"whitespace name", "acme-corp", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenant, err := NewTenant(tt.slug, tt.tname)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.slug, tenant.Slug)
			assert.Equal(t, TenantStatusActive, tenant.Status)
			assert.True(t, tenant.IsActive())
			assert.Positive(t, tenant.Quotas.MaxUsers)
		})
	}
}

func TestTenant_Lifecycle(t *testing.T) {
	tenant, err := NewTenant("acme-corp", "Acme Corp")
	require.NoError(t, err)

	tenant.Suspend()
	assert.Equal(t, TenantStatusSuspended, tenant.Status)
	assert.False(t, tenant.IsActive())

	tenant.Activate()
	assert.True(t, tenant.IsActive())

	tenant.SoftDelete()
	assert.True(t, tenant.IsDeleted())
	assert.NotNil(t, tenant.DeletedAt)
}

func TestMembershipSet(t *testing.T) {
	identityID := uuid.New()
	tenantA := uuid.New()
	tenantB := uuid.New()
	outsider := uuid.New()

	set := MembershipSet{
		Memberships: []Membership{
			{IdentityID: identityID, TenantID: tenantA, Role: MembershipRoleOwner},
			{IdentityID: identityID, TenantID: tenantB, Role: MembershipRoleMember},
		},
		Tenants: []Tenant{
			{ID: tenantA, Slug: "tenant-a", Name: "Tenant A"},
			{ID: tenantB, Slug: "tenant-b", Name: "Tenant B"},
		},
	}

	assert.True(t, set.Contains(tenantA))
	assert.True(t, set.Contains(tenantB))
	assert.False(t, set.Contains(outsider))

	assert.Equal(t, tenantA, set.First())

	resolved := set.TenantByID(tenantB)
	require.NotNil(t, resolved)
	assert.Equal(t, "tenant-b", resolved.Slug)

	assert.Nil(t, set.TenantByID(outsider))
}

func TestMembershipSet_Empty(t *testing.T) {
	var set MembershipSet
	assert.Equal(t, uuid.Nil, set.First())
	assert.False(t, set.Contains(uuid.New()))
}
