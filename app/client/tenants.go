package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"session-service/app/client/credstore"
	"session-service/app/domain"
	"session-service/app/eventbus"
	apperrors "session-service/app/utils/errors"
)

// TenantDirectory is the single authority for the current identity's
// tenant memberships and the active selection. The persisted selection
// lives in the credential store and is written only here, so no second
// holder can disagree with it.
type TenantDirectory struct {
	mu     sync.Mutex
	set    domain.MembershipSet
	loaded bool

	gateway *Gateway
	store   credstore.Store
	bus     *eventbus.Bus
	logger  *slog.Logger
}

// NewTenantDirectory creates the directory.
func NewTenantDirectory(gateway *Gateway, store credstore.Store, bus *eventbus.Bus, logger *slog.Logger) *TenantDirectory {
	return &TenantDirectory{
		gateway: gateway,
		store:   store,
		bus:     bus,
		logger:  logger.With("component", "tenant_directory"),
	}
}

// LoadMemberships fetches the identity's memberships and tenants. On the
// first successful load with no persisted selection, the first
// membership becomes the active tenant and is persisted. A persisted
// selection that is no longer in the membership set is replaced the same
// way rather than kept stale.
func (d *TenantDirectory) LoadMemberships(ctx context.Context) (domain.MembershipSet, error) {
	resp, err := d.gateway.Get(ctx, "/v1/tenants/memberships")
	if err != nil {
		return domain.MembershipSet{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return domain.MembershipSet{}, apperrors.Newf(apperrors.ErrCodeInternalError,
			"membership load failed with status %d", resp.StatusCode)
	}

	var memberships domain.MembershipsResponse
	if err := resp.DecodeJSON(&memberships); err != nil {
		return domain.MembershipSet{}, apperrors.Wrap(apperrors.ErrCodeInternalError,
			"malformed memberships response", err)
	}

	set := domain.MembershipSet{
		Memberships: memberships.Memberships,
		Tenants:     memberships.Tenants,
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.set = set
	d.loaded = true

	selected, err := d.store.ReadTenant()
	if err != nil {
		return set, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to read tenant selection", err)
	}

	if selected == uuid.Nil || !set.Contains(selected) {
		first := set.First()
		if first != uuid.Nil {
			if err := d.store.WriteTenant(first); err != nil {
				return set, apperrors.Wrap(apperrors.ErrCodeInternalError,
					"failed to persist tenant selection", err)
			}
			d.logger.Info("default tenant selected", "tenant_id", first)
		}
	}

	return set, nil
}

// SwitchTenant moves the active selection to the given tenant. A target
// outside the membership set fails immediately with TENANT_MISMATCH and
// no request is sent. The persisted selection changes only after the
// server confirms the switch; until then, in-flight requests keep the
// prior tenant tag. Dependent screens invalidate their caches on the
// emitted tenant_changed signal.
func (d *TenantDirectory) SwitchTenant(ctx context.Context, tenantID uuid.UUID) error {
	d.mu.Lock()
	if !d.loaded {
		d.mu.Unlock()
		return apperrors.New(apperrors.ErrCodeInternalError, "memberships not loaded")
	}
	if !d.set.Contains(tenantID) {
		d.mu.Unlock()
		d.logger.Info("tenant switch rejected locally", "tenant_id", tenantID)
		return apperrors.NewTenantMismatch(tenantID.String())
	}
	d.mu.Unlock()

	path := fmt.Sprintf("/v1/tenants/%s/switch", tenantID)
	resp, err := d.gateway.Post(ctx, path, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		// Failure leaves the active tenant unchanged.
		d.logger.Info("tenant switch refused by server",
			"tenant_id", tenantID, "status", resp.StatusCode)
		if resp.StatusCode == http.StatusForbidden {
			return apperrors.NewTenantMismatch(tenantID.String())
		}
		return apperrors.Newf(apperrors.ErrCodeInternalError,
			"tenant switch failed with status %d", resp.StatusCode)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.store.WriteTenant(tenantID); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to persist tenant selection", err)
	}

	d.logger.Info("active tenant switched", "tenant_id", tenantID)
	d.bus.Publish(domain.NewTenantChangedEvent(tenantID))
	return nil
}

// ActiveTenant returns the persisted selection, uuid.Nil if none.
func (d *TenantDirectory) ActiveTenant() uuid.UUID {
	tenantID, err := d.store.ReadTenant()
	if err != nil {
		d.logger.Error("failed to read tenant selection", "error", err)
		return uuid.Nil
	}
	return tenantID
}

// IsCurrent reports whether a response tagged with the given tenant id
// may still be applied. Screens call this before applying results, so a
// response dispatched under the previous tenant is discarded.
func (d *TenantDirectory) IsCurrent(tag uuid.UUID) bool {
	return tag == d.ActiveTenant()
}

// Memberships returns the loaded set.
func (d *TenantDirectory) Memberships() domain.MembershipSet {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.set
}
