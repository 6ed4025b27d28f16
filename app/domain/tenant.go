package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
	TenantStatusDeleted   TenantStatus = "deleted"
)

// TenantQuotas defines resource limits for a tenant
type TenantQuotas struct {
	MaxUsers         int     `json:"max_users"`
	MaxConcurrentOps int     `json:"max_concurrent_ops"`
	BudgetCeiling    float64 `json:"budget_ceiling"`
}

// Tenant represents an isolated customer scope. All business data is
// partitioned by tenant.
type Tenant struct {
	ID        uuid.UUID    `json:"id"`
	Slug      string       `json:"slug"`
	Name      string       `json:"name"`
	Domain    string       `json:"domain,omitempty"`
	Status    TenantStatus `json:"status"`
	Quotas    TenantQuotas `json:"quotas"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	DeletedAt *time.Time   `json:"deleted_at,omitempty"`
}

// slugRegex validates tenant slugs (lowercase, alphanumeric, hyphens only)
var slugRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// NewTenant creates a new tenant with validation
func NewTenant(slug, name string) (*Tenant, error) {
	if slug == "" {
		return nil, fmt.Errorf("slug is required")
	}

	if len(slug) > 100 {
		return nil, fmt.Errorf("slug must be 100 characters or less")
	}

	if !slugRegex.MatchString(slug) {
		return nil, fmt.Errorf("slug must contain only lowercase letters, numbers, and hyphens")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	now := time.Now()

	tenant := &Tenant{
		ID:     uuid.New(),
		Slug:   slug,
		Name:   name,
		Status: TenantStatusActive,
		Quotas: TenantQuotas{
			MaxUsers:         50,
			MaxConcurrentOps: 10,
			BudgetCeiling:    0,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	return tenant, nil
}

// Suspend suspends the tenant
func (t *Tenant) Suspend() {
	t.Status = TenantStatusSuspended
	t.UpdatedAt = time.Now()
}

// Activate activates the tenant
func (t *Tenant) Activate() {
	t.Status = TenantStatusActive
	t.UpdatedAt = time.Now()
}

// SoftDelete marks the tenant as deleted
func (t *Tenant) SoftDelete() {
	now := time.Now()
	t.DeletedAt = &now
	t.Status = TenantStatusDeleted
	t.UpdatedAt = now
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// IsDeleted returns true if the tenant is soft deleted
func (t *Tenant) IsDeleted() bool {
	return t.DeletedAt != nil || t.Status == TenantStatusDeleted
}

// MembershipRole represents the role an identity holds inside a tenant
type MembershipRole string

const (
	MembershipRoleOwner    MembershipRole = "owner"
	MembershipRoleAdmin    MembershipRole = "admin"
	MembershipRoleMember   MembershipRole = "member"
	MembershipRoleReadonly MembershipRole = "readonly"
)

// Membership grants an identity access to a specific tenant with a role.
// The set of memberships for an identity bounds which tenants it may
// switch to.
type Membership struct {
	IdentityID uuid.UUID      `json:"identity_id"`
	TenantID   uuid.UUID      `json:"tenant_id"`
	Role       MembershipRole `json:"role"`
	CreatedAt  time.Time      `json:"created_at"`
}

// MembershipSet is the loaded memberships for one identity, paired with
// the tenants they point at.
type MembershipSet struct {
	Memberships []Membership `json:"memberships"`
	Tenants     []Tenant     `json:"tenants"`
}

// Contains reports whether the set grants access to the given tenant.
func (s MembershipSet) Contains(tenantID uuid.UUID) bool {
	for _, m := range s.Memberships {
		if m.TenantID == tenantID {
			return true
		}
	}
	return false
}

// First returns the tenant id of the first membership, or uuid.Nil for an
// empty set. Used as the default selection on first load.
func (s MembershipSet) First() uuid.UUID {
	if len(s.Memberships) == 0 {
		return uuid.Nil
	}
	return s.Memberships[0].TenantID
}

// TenantByID resolves a tenant from the set, nil if absent.
func (s MembershipSet) TenantByID(tenantID uuid.UUID) *Tenant {
	for i := range s.Tenants {
		if s.Tenants[i].ID == tenantID {
			return &s.Tenants[i]
		}
	}
	return nil
}
