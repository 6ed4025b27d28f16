package integration_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"session-service/app/domain"
)

// In-memory repositories backing the full server stack. They honor the
// same not-found sentinels as the postgres implementations so the
// usecases cannot tell the difference.

type memIdentityRepo struct {
	mu         sync.Mutex
	identities map[uuid.UUID]*domain.Identity
}

func newMemIdentityRepo() *memIdentityRepo {
	return &memIdentityRepo{identities: make(map[uuid.UUID]*domain.Identity)}
}

func (r *memIdentityRepo) Create(_ context.Context, identity *domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *identity
	r.identities[identity.ID] = &cp
	return nil
}

func (r *memIdentityRepo) GetByID(_ context.Context, identityID uuid.UUID) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	identity, ok := r.identities[identityID]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	cp := *identity
	return &cp, nil
}

func (r *memIdentityRepo) GetByEmail(_ context.Context, email string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, identity := range r.identities {
		if strings.EqualFold(identity.Email, email) {
			cp := *identity
			return &cp, nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (r *memIdentityRepo) GetByProvider(_ context.Context, provider, providerUserID string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, identity := range r.identities {
		if identity.Provider == provider && identity.ProviderUserID == providerUserID {
			cp := *identity
			return &cp, nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (r *memIdentityRepo) Update(_ context.Context, identity *domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.identities[identity.ID]; !ok {
		return domain.ErrIdentityNotFound
	}
	cp := *identity
	r.identities[identity.ID] = &cp
	return nil
}

func (r *memIdentityRepo) Delete(_ context.Context, identityID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.identities, identityID)
	return nil
}

type memTenantRepo struct {
	mu          sync.Mutex
	tenants     map[uuid.UUID]*domain.Tenant
	memberships []domain.Membership
}

func newMemTenantRepo() *memTenantRepo {
	return &memTenantRepo{tenants: make(map[uuid.UUID]*domain.Tenant)}
}

func (r *memTenantRepo) Create(_ context.Context, tenant *domain.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tenant
	r.tenants[tenant.ID] = &cp
	return nil
}

func (r *memTenantRepo) GetByID(_ context.Context, tenantID uuid.UUID) (*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tenant, ok := r.tenants[tenantID]
	if !ok {
		return nil, domain.ErrTenantNotFound
	}
	cp := *tenant
	return &cp, nil
}

func (r *memTenantRepo) GetBySlug(_ context.Context, slug string) (*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tenant := range r.tenants {
		if tenant.Slug == slug {
			cp := *tenant
			return &cp, nil
		}
	}
	return nil, domain.ErrTenantNotFound
}

func (r *memTenantRepo) Update(_ context.Context, tenant *domain.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tenants[tenant.ID]; !ok {
		return domain.ErrTenantNotFound
	}
	cp := *tenant
	r.tenants[tenant.ID] = &cp
	return nil
}

func (r *memTenantRepo) AddMembership(_ context.Context, membership *domain.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.memberships = append(r.memberships, *membership)
	return nil
}

func (r *memTenantRepo) RemoveMembership(_ context.Context, identityID, tenantID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.memberships {
		if m.IdentityID == identityID && m.TenantID == tenantID {
			r.memberships = append(r.memberships[:i], r.memberships[i+1:]...)
			return nil
		}
	}
	return domain.ErrTenantMismatch
}

func (r *memTenantRepo) ListByIdentity(_ context.Context, identityID uuid.UUID) (*domain.MembershipSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := &domain.MembershipSet{}
	for _, m := range r.memberships {
		if m.IdentityID != identityID {
			continue
		}
		tenant, ok := r.tenants[m.TenantID]
		if !ok || !tenant.IsActive() {
			continue
		}
		set.Memberships = append(set.Memberships, m)
		set.Tenants = append(set.Tenants, *tenant)
	}
	return set, nil
}

func (r *memTenantRepo) CountMembers(_ context.Context, tenantID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, m := range r.memberships {
		if m.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*domain.RefreshToken
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[string]*domain.RefreshToken)}
}

func (r *memTokenRepo) Create(_ context.Context, token *domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *token
	r.tokens[token.Token] = &cp
	return nil
}

func (r *memTokenRepo) GetByToken(_ context.Context, token string) (*domain.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.tokens[token]
	if !ok {
		return nil, domain.ErrRefreshTokenInvalid
	}
	cp := *rt
	return &cp, nil
}

func (r *memTokenRepo) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.tokens[token]
	if !ok {
		return domain.ErrRefreshTokenInvalid
	}
	now := time.Now()
	rt.RevokedAt = &now
	return nil
}

func (r *memTokenRepo) RevokeAllForIdentity(_ context.Context, identityID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, rt := range r.tokens {
		if rt.IdentityID == identityID && rt.RevokedAt == nil {
			rt.RevokedAt = &now
		}
	}
	return nil
}

func (r *memTokenRepo) DeleteExpired(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := 0
	for token, rt := range r.tokens {
		if rt.ExpiresAt.Before(time.Now()) {
			delete(r.tokens, token)
			deleted++
		}
	}
	return deleted, nil
}
