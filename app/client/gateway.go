package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"session-service/app/client/credstore"
	"session-service/app/domain"
	"session-service/app/eventbus"
	apperrors "session-service/app/utils/errors"
)

// HeaderTenantID carries the active tenant on every authorized request.
const HeaderTenantID = "X-Tenant-ID"

// unauthenticatedPaths may be dispatched without a credential.
var unauthenticatedPaths = map[string]bool{
	"/v1/auth/login":    true,
	"/v1/auth/register": true,
	"/v1/auth/refresh":  true,
	"/v1/auth/callback": true,
	"/v1/health":        true,
}

// Response is the gateway's view of a completed call. TenantID is the
// tenant in effect at dispatch time; callers compare it against the
// current selection before applying the result, so a response from a
// request dispatched under the previous tenant is discarded instead of
// leaking across the boundary.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	TenantID   uuid.UUID
}

// DecodeJSON unmarshals the response body into v.
func (r *Response) DecodeJSON(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// StaleFor reports whether the response was dispatched under a tenant
// other than the given current one.
func (r *Response) StaleFor(current uuid.UUID) bool {
	return r.TenantID != current
}

// Gateway is the single choke point for outbound API calls. It is the
// only place credential and tenant headers are computed; call sites need
// no tenant or credential awareness.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	store      credstore.Store
	bus        *eventbus.Bus
	logger     *slog.Logger
}

// NewGateway creates a request gateway over the given API base URL.
func NewGateway(baseURL string, store credstore.Store, bus *eventbus.Bus, logger *slog.Logger) *Gateway {
	return &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      store,
		bus:        bus,
		logger:     logger.With("component", "gateway"),
	}
}

// WithHTTPClient replaces the underlying HTTP client (used in tests).
func (g *Gateway) WithHTTPClient(c *http.Client) *Gateway {
	g.httpClient = c
	return g
}

// Do dispatches one API call. A non-nil payload is sent as JSON.
//
// Before dispatch the current credential and tenant selection are read;
// an absent or expired credential fails fast for any path outside the
// unauthenticated allowlist, without network I/O. Expiry is checked
// lazily here, at dispatch time.
//
// A 401 response publishes a single logout(rejected) event and fails
// with SESSION_EXPIRED; the request is never retried. Every other
// status passes through to the caller unmodified.
func (g *Gateway) Do(ctx context.Context, method, path string, payload interface{}) (*Response, error) {
	cred, err := g.store.Read()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to read credential store", err)
	}

	tenantID, err := g.store.ReadTenant()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to read tenant selection", err)
	}

	if !cred.IsValid() && !unauthenticatedPaths[path] {
		if cred != nil && cred.IsExpired() {
			// An expired credential is treated as absent; it is
			// never attached to an outbound request.
			g.bus.Publish(domain.NewLogoutEvent(domain.LogoutReasonExpired, cred.Token))
		}
		g.logger.Debug("rejecting dispatch without valid credential", "path", path)
		return nil, apperrors.New(apperrors.ErrCodeInvalidCredentials, "no valid credential for "+path)
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, "failed to encode request body", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, "failed to build request", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if cred.IsValid() {
		req.Header.Set("Authorization", "Bearer "+cred.Token)
		if tenantID != uuid.Nil {
			req.Header.Set(HeaderTenantID, tenantID.String())
		}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewNetworkError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized && cred.IsValid() {
		// The server refused the credential. Funnel through the one
		// logout path instead of handling it at each call site; the
		// bus collapses concurrent rejections of the same credential
		// into one delivered event. No retry.
		g.logger.Info("credential rejected by server", "path", path)
		g.bus.Publish(domain.NewLogoutEvent(domain.LogoutReasonRejected, cred.Token))
		return nil, apperrors.Wrap(apperrors.ErrCodeSessionExpired,
			"your session has expired, please log in again", domain.ErrSessionExpired)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
		TenantID:   tenantID,
	}, nil
}

// Get dispatches a GET call.
func (g *Gateway) Get(ctx context.Context, path string) (*Response, error) {
	return g.Do(ctx, http.MethodGet, path, nil)
}

// Post dispatches a POST call with a JSON payload.
func (g *Gateway) Post(ctx context.Context, path string, payload interface{}) (*Response, error) {
	return g.Do(ctx, http.MethodPost, path, payload)
}
