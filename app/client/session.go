package client

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"session-service/app/client/credstore"
	"session-service/app/domain"
	"session-service/app/eventbus"
	apperrors "session-service/app/utils/errors"
)

// SessionController owns the authenticated/unauthenticated state machine
// and is the only component that writes or clears the credential. All
// transitions happen under one lock; "verifying" is a transient startup
// state and is never reported as a committed session.
type SessionController struct {
	mu       sync.Mutex
	state    domain.SessionState
	identity *domain.IdentitySummary
	notice   string

	// generation is bumped on every logout. Results of calls that were
	// in flight when the logout happened carry the old generation and
	// are discarded instead of being applied.
	generation uint64

	gateway *Gateway
	store   credstore.Store
	bus     *eventbus.Bus
	logger  *slog.Logger

	unsubscribe func()
}

// NewSessionController creates the controller. The initial state is
// verifying when a persisted credential exists, unauthenticated
// otherwise; call Verify once at startup to resolve the former.
func NewSessionController(gateway *Gateway, store credstore.Store, bus *eventbus.Bus, logger *slog.Logger) (*SessionController, error) {
	c := &SessionController{
		state:   domain.StateUnauthenticated,
		gateway: gateway,
		store:   store,
		bus:     bus,
		logger:  logger.With("component", "session_controller"),
	}

	cred, err := store.Read()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to read credential store", err)
	}
	if cred != nil {
		c.state = domain.StateVerifying
	}

	events, unsubscribe := bus.Subscribe()
	c.unsubscribe = unsubscribe
	go c.consumeEvents(events)

	return c, nil
}

// Close releases the bus subscription.
func (c *SessionController) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// State returns the committed session state. The transient verifying
// state is reported as unauthenticated until verification commits.
func (c *SessionController) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == domain.StateVerifying {
		return domain.StateUnauthenticated
	}
	return c.state
}

// Session recomputes the derived session view from the current
// credential and tenant selection. Nothing is cached; two reads cannot
// disagree with the stores.
func (c *SessionController) Session() domain.Session {
	c.mu.Lock()
	identity := c.identity
	state := c.state
	c.mu.Unlock()

	if state != domain.StateAuthenticated {
		return domain.Anonymous()
	}

	cred, err := c.store.Read()
	if err != nil || !cred.IsValid() {
		return domain.Anonymous()
	}

	tenantID, _ := c.store.ReadTenant()
	s := domain.Session{
		IdentityID:    cred.IdentityID,
		TenantID:      tenantID,
		Authenticated: true,
	}
	if identity != nil {
		s.Email = identity.Email
		s.Name = identity.Name
	}
	return s
}

// ExpiredNotice returns the pending "session expired" notice, clearing
// it. Only a server-rejected credential produces a notice; a manual
// logout does not, to avoid a redundant message after the user's own
// action.
func (c *SessionController) ExpiredNotice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	notice := c.notice
	c.notice = ""
	return notice
}

// Login authenticates with email and password. On success the credential
// is written and the state commits to authenticated; on failure the
// state stays unauthenticated and the error carries a user-displayable
// message.
func (c *SessionController) Login(ctx context.Context, email, password string) error {
	gen := c.currentGeneration()

	resp, err := c.gateway.Post(ctx, "/v1/auth/login", domain.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Info("login rejected", "status", resp.StatusCode)
		c.transition(domain.StateUnauthenticated)
		return apperrors.ErrInvalidCredentials
	}

	var login domain.LoginResponse
	if err := resp.DecodeJSON(&login); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternalError, "malformed login response", err)
	}

	cred, err := domain.NewCredential(login.Token, login.User.ID, login.ExpiresAt)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternalError, "incomplete login response", err)
	}
	if login.RefreshToken != "" {
		cred.WithRefreshToken(login.RefreshToken)
	}

	return c.commit(gen, cred, &login.User)
}

// Register creates an account and commits the returned credential the
// same way a login does.
func (c *SessionController) Register(ctx context.Context, email, name, password string) error {
	gen := c.currentGeneration()

	resp, err := c.gateway.Post(ctx, "/v1/auth/register", domain.RegisterRequest{
		Email:    email,
		Name:     name,
		Password: password,
	})
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		c.transition(domain.StateUnauthenticated)
		if resp.StatusCode == http.StatusConflict {
			return apperrors.ErrIdentityExists
		}
		return apperrors.ErrInvalidCredentials
	}

	var login domain.LoginResponse
	if err := resp.DecodeJSON(&login); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternalError, "malformed register response", err)
	}

	cred, err := domain.NewCredential(login.Token, login.User.ID, login.ExpiresAt)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternalError, "incomplete register response", err)
	}
	if login.RefreshToken != "" {
		cred.WithRefreshToken(login.RefreshToken)
	}

	return c.commit(gen, cred, &login.User)
}

// Verify confirms a persisted credential at startup. Failure is the
// normal stale-session case, not a user action: the credential is
// cleared and the state goes unauthenticated silently.
func (c *SessionController) Verify(ctx context.Context) error {
	c.mu.Lock()
	if c.state != domain.StateVerifying {
		c.mu.Unlock()
		return nil
	}
	gen := c.generation
	c.mu.Unlock()

	resp, err := c.gateway.Get(ctx, "/v1/auth/verify")
	if err != nil {
		c.discardSession(gen, domain.LogoutReasonExpired)
		return nil
	}

	var verify domain.VerifyResponse
	if resp.StatusCode != http.StatusOK || resp.DecodeJSON(&verify) != nil || !verify.Valid {
		c.discardSession(gen, domain.LogoutReasonExpired)
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		// A logout ran while the verify call was in flight.
		return nil
	}
	c.state = domain.StateAuthenticated
	c.identity = verify.User
	c.logger.Info("persisted session verified", "identity_id", verify.User.ID)
	return nil
}

// Refresh exchanges the stored refresh token for a fresh credential.
// This is explicit; nothing refreshes automatically.
func (c *SessionController) Refresh(ctx context.Context) error {
	cred, err := c.store.Read()
	if err != nil || cred == nil || cred.RefreshToken == "" {
		return apperrors.New(apperrors.ErrCodeInvalidToken, "no refresh token available")
	}

	gen := c.currentGeneration()

	resp, err := c.gateway.Post(ctx, "/v1/auth/refresh", domain.RefreshRequest{
		RefreshToken: cred.RefreshToken,
	})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return apperrors.New(apperrors.ErrCodeInvalidToken, "refresh token rejected")
	}

	var login domain.LoginResponse
	if err := resp.DecodeJSON(&login); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternalError, "malformed refresh response", err)
	}

	fresh, err := domain.NewCredential(login.Token, login.User.ID, login.ExpiresAt)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternalError, "incomplete refresh response", err)
	}
	if login.RefreshToken != "" {
		fresh.WithRefreshToken(login.RefreshToken)
	}

	return c.commit(gen, fresh, &login.User)
}

// Logout always succeeds. The server call is best effort; local state is
// cleared regardless, and the credential and tenant selection go
// together.
func (c *SessionController) Logout(ctx context.Context) {
	cred, _ := c.store.Read()

	if cred.IsValid() {
		if _, err := c.gateway.Post(ctx, "/v1/auth/logout", nil); err != nil {
			c.logger.Debug("logout call failed, clearing local state anyway", "error", err)
		}
	}

	token := ""
	if cred != nil {
		token = cred.Token
	}
	c.bus.Publish(domain.NewLogoutEvent(domain.LogoutReasonManual, token))

	c.clearLocked(domain.LogoutReasonManual)
}

// consumeEvents applies bus logout events: same transition as an
// explicit logout, plus a user-facing notice when the server rejected
// the credential.
func (c *SessionController) consumeEvents(events <-chan domain.AuthEvent) {
	for event := range events {
		if event.Kind != domain.AuthEventLogout {
			continue
		}
		c.applyLogoutEvent(event)
	}
}

// applyLogoutEvent tears the session down only when the event names the
// credential currently held. A late rejection of an old credential, or a
// still-buffered manual logout event, must not clear a session that was
// established after it.
func (c *SessionController) applyLogoutEvent(event domain.AuthEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cred, err := c.store.Read()
	if err != nil || cred == nil || cred.Token != event.Token {
		c.logger.Debug("ignoring logout event for a credential no longer held",
			"reason", string(event.Reason))
		return
	}

	c.logger.Info("logout event received", "reason", string(event.Reason))
	c.clear(event.Reason)
}

// transition commits a bare state change with no store side effects.
func (c *SessionController) transition(state domain.SessionState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
}

// clearLocked clears the stores and commits the unauthenticated state.
func (c *SessionController) clearLocked(reason domain.LogoutReason) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear(reason)
}

// clear is clearLocked's body; c.mu must be held.
func (c *SessionController) clear(reason domain.LogoutReason) {
	if err := c.store.Clear(); err != nil {
		c.logger.Error("failed to clear credential store", "error", err)
	}

	c.state = domain.StateUnauthenticated
	c.identity = nil
	c.generation++

	if reason == domain.LogoutReasonRejected {
		c.notice = "your session has expired, please log in again"
	}
}

// discardSession clears a credential that failed verification, without
// surfacing an error.
func (c *SessionController) discardSession(gen uint64, reason domain.LogoutReason) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return
	}
	if err := c.store.Clear(); err != nil {
		c.logger.Error("failed to clear credential store", "error", err)
	}
	c.state = domain.StateUnauthenticated
	c.identity = nil
	c.generation++
	c.logger.Info("stale session discarded", "reason", string(reason))
}

// commit writes a fresh credential and moves to authenticated, unless a
// logout happened while the login call was in flight; in that case the
// result is discarded rather than applied.
func (c *SessionController) commit(gen uint64, cred *domain.Credential, identity *domain.IdentitySummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != gen {
		c.logger.Info("discarding login result that arrived after logout")
		return apperrors.New(apperrors.ErrCodeSessionExpired, "session was closed before login completed")
	}

	if err := c.store.Write(cred); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to persist credential", err)
	}

	// A new credential means new rejections must be deliverable.
	c.bus.Reset()

	c.state = domain.StateAuthenticated
	c.identity = identity
	c.notice = ""
	c.logger.Info("session established", "identity_id", identity.ID)
	return nil
}

func (c *SessionController) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// IdentityID returns the authenticated identity id, uuid.Nil when
// unauthenticated.
func (c *SessionController) IdentityID() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != domain.StateAuthenticated || c.identity == nil {
		return uuid.Nil
	}
	return c.identity.ID
}
