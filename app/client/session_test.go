package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-service/app/client/credstore"
	"session-service/app/domain"
	"session-service/app/eventbus"
	apperrors "session-service/app/utils/errors"
	"session-service/app/utils/logger"
)

type sessionFixture struct {
	controller *SessionController
	gateway    *Gateway
	store      credstore.Store
	bus        *eventbus.Bus
}

// newSessionFixture wires a controller against a fake auth API that
// accepts demo@vyomtech.com / demo123!x as the only valid credentials.
func newSessionFixture(t *testing.T, seed *domain.Credential) (*sessionFixture, uuid.UUID) {
	t.Helper()

	log, err := logger.New("error")
	require.NoError(t, err)

	identityID := uuid.New()
	validToken := "issued-token"

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "demo@vyomtech.com" || req.Password != "demo123!x" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(domain.LoginResponse{
			Token:        validToken,
			RefreshToken: "refresh-token",
			ExpiresAt:    time.Now().Add(time.Hour),
			User: domain.IdentitySummary{
				ID:    identityID,
				Email: req.Email,
				Name:  "Demo",
			},
		})
	})
	mux.HandleFunc("/v1/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+validToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(domain.VerifyResponse{
			Valid: true,
			User:  &domain.IdentitySummary{ID: identityID, Email: "demo@vyomtech.com", Name: "Demo"},
		})
	})
	mux.HandleFunc("/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var req domain.RefreshRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.RefreshToken != "refresh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(domain.LoginResponse{
			Token:     "rotated-token",
			ExpiresAt: time.Now().Add(time.Hour),
			User:      domain.IdentitySummary{ID: identityID, Email: "demo@vyomtech.com", Name: "Demo"},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	store := credstore.NewMemoryStore()
	if seed != nil {
		require.NoError(t, store.Write(seed))
	}
	bus := eventbus.New(log)
	gateway := NewGateway(server.URL, store, bus, log)

	controller, err := NewSessionController(gateway, store, bus, log)
	require.NoError(t, err)
	t.Cleanup(controller.Close)

	return &sessionFixture{
		controller: controller,
		gateway:    gateway,
		store:      store,
		bus:        bus,
	}, identityID
}

func TestSessionController_LoginSuccess(t *testing.T) {
	f, identityID := newSessionFixture(t, nil)

	require.NoError(t, f.controller.Login(context.Background(), "demo@vyomtech.com", "demo123!x"))

	assert.Equal(t, domain.StateAuthenticated, f.controller.State())

	// The credential is persisted with the matching identity
	cred, err := f.store.Read()
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, identityID, cred.IdentityID)
	assert.True(t, cred.IsValid())

	session := f.controller.Session()
	assert.True(t, session.Authenticated)
	assert.Equal(t, identityID, session.IdentityID)
	assert.Equal(t, "demo@vyomtech.com", session.Email)
}

func TestSessionController_LoginFailure(t *testing.T) {
	f, _ := newSessionFixture(t, nil)

	err := f.controller.Login(context.Background(), "demo@vyomtech.com", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidCredentials, apperrors.GetErrorCode(err))
	assert.Equal(t, domain.StateUnauthenticated, f.controller.State())

	cred, readErr := f.store.Read()
	require.NoError(t, readErr)
	assert.Nil(t, cred, "no credential is written on failed login")
}

func TestSessionController_LoginThenVerify(t *testing.T) {
	f, identityID := newSessionFixture(t, nil)

	require.NoError(t, f.controller.Login(context.Background(), "demo@vyomtech.com", "demo123!x"))

	// A fresh controller over the same store starts verifying
	log, err := logger.New("error")
	require.NoError(t, err)
	second, err := NewSessionController(f.gateway, f.store, f.bus, log)
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, second.Verify(context.Background()))
	assert.Equal(t, domain.StateAuthenticated, second.State())
	assert.Equal(t, identityID, second.IdentityID())
}

func TestSessionController_VerifyFailureClearsSilently(t *testing.T) {
	stale, err := domain.NewCredential("stale-token", uuid.New(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	f, _ := newSessionFixture(t, stale)

	// Verify fails because the server does not know the token; that is
	// a normal stale-session case and must not surface an error.
	require.NoError(t, f.controller.Verify(context.Background()))
	assert.Equal(t, domain.StateUnauthenticated, f.controller.State())

	cred, readErr := f.store.Read()
	require.NoError(t, readErr)
	assert.Nil(t, cred)
	assert.Empty(t, f.controller.ExpiredNotice(), "stale session is not a user-facing failure")
}

func TestSessionController_LogoutAlwaysSucceeds(t *testing.T) {
	tests := []struct {
		name  string
		login bool
	}{
		{"logout while authenticated", true},
		{"logout while unauthenticated", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newSessionFixture(t, nil)

			if tt.login {
				require.NoError(t, f.controller.Login(context.Background(), "demo@vyomtech.com", "demo123!x"))
				require.NoError(t, f.store.WriteTenant(uuid.New()))
			}

			f.controller.Logout(context.Background())

			assert.Equal(t, domain.StateUnauthenticated, f.controller.State())

			cred, err := f.store.Read()
			require.NoError(t, err)
			assert.Nil(t, cred)

			tenantID, err := f.store.ReadTenant()
			require.NoError(t, err)
			assert.Equal(t, uuid.Nil, tenantID, "tenant selection is cleared with the credential")

			assert.Empty(t, f.controller.ExpiredNotice(), "manual logout shows no expiry notice")

			// Idempotent terminal operation
			f.controller.Logout(context.Background())
			assert.Equal(t, domain.StateUnauthenticated, f.controller.State())
		})
	}
}

func TestSessionController_RejectedEventExpiresSession(t *testing.T) {
	f, _ := newSessionFixture(t, nil)

	require.NoError(t, f.controller.Login(context.Background(), "demo@vyomtech.com", "demo123!x"))

	cred, err := f.store.Read()
	require.NoError(t, err)

	f.bus.Publish(domain.NewLogoutEvent(domain.LogoutReasonRejected, cred.Token))

	require.Eventually(t, func() bool {
		return f.controller.State() == domain.StateUnauthenticated
	}, time.Second, 10*time.Millisecond)

	cleared, err := f.store.Read()
	require.NoError(t, err)
	assert.Nil(t, cleared)

	assert.NotEmpty(t, f.controller.ExpiredNotice(), "rejected credential surfaces a session expired notice")
	assert.Empty(t, f.controller.ExpiredNotice(), "notice is consumed on read")
}

func TestSessionController_StaleLogoutEventIsIgnored(t *testing.T) {
	f, _ := newSessionFixture(t, nil)

	require.NoError(t, f.controller.Login(context.Background(), "demo@vyomtech.com", "demo123!x"))

	cred, err := f.store.Read()
	require.NoError(t, err)

	// A rejection of a credential from before this login must not tear
	// down the session established after it.
	f.bus.Publish(domain.NewLogoutEvent(domain.LogoutReasonRejected, "revoked-earlier-token"))

	assert.Never(t, func() bool {
		return f.controller.State() == domain.StateUnauthenticated
	}, 200*time.Millisecond, 10*time.Millisecond)

	kept, err := f.store.Read()
	require.NoError(t, err)
	require.NotNil(t, kept, "credential survives a logout event for another credential")
	assert.Empty(t, f.controller.ExpiredNotice())

	// The consumer is still live: an event naming the held credential
	// tears the session down as usual.
	f.bus.Publish(domain.NewLogoutEvent(domain.LogoutReasonRejected, cred.Token))
	require.Eventually(t, func() bool {
		return f.controller.State() == domain.StateUnauthenticated
	}, time.Second, 10*time.Millisecond)
}

func TestSessionController_Refresh(t *testing.T) {
	f, identityID := newSessionFixture(t, nil)

	require.NoError(t, f.controller.Login(context.Background(), "demo@vyomtech.com", "demo123!x"))
	require.NoError(t, f.controller.Refresh(context.Background()))

	cred, err := f.store.Read()
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, "rotated-token", cred.Token)
	assert.Equal(t, identityID, cred.IdentityID)
	assert.Equal(t, domain.StateAuthenticated, f.controller.State())
}

func TestSessionController_RefreshWithoutToken(t *testing.T) {
	f, _ := newSessionFixture(t, nil)

	err := f.controller.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidToken, apperrors.GetErrorCode(err))
}

func TestSessionController_SessionViewNeverPartial(t *testing.T) {
	f, _ := newSessionFixture(t, nil)

	// Unauthenticated: fully anonymous view
	session := f.controller.Session()
	assert.Equal(t, domain.Anonymous(), session)

	require.NoError(t, f.controller.Login(context.Background(), "demo@vyomtech.com", "demo123!x"))

	// Clearing the store out from under the controller must degrade the
	// derived view to anonymous, never to a half-filled session.
	require.NoError(t, f.store.Clear())
	session = f.controller.Session()
	assert.False(t, session.Authenticated)
	assert.Equal(t, uuid.Nil, session.IdentityID)
}
