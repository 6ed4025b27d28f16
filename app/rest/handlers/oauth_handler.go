package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"session-service/app/metrics"
	"session-service/app/port"
	"session-service/app/rest/cookies"
)

const (
	oauthStateCookie = "oauth_state"
	errorRedirect    = "/auth/error"
	successRedirect  = "/dashboard"
)

// OAuthHandler drives the OAuth authorization code flow against
// external identity providers.
type OAuthHandler struct {
	authUsecase     port.AuthUsecase
	providerGateway port.ProviderGateway
	cookieOpts      cookies.Options
	logger          *slog.Logger
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(
	authUsecase port.AuthUsecase,
	providerGateway port.ProviderGateway,
	cookieOpts cookies.Options,
	logger *slog.Logger,
) *OAuthHandler {
	return &OAuthHandler{
		authUsecase:     authUsecase,
		providerGateway: providerGateway,
		cookieOpts:      cookieOpts,
		logger:          logger,
	}
}

// Authorize redirects the browser to the provider's consent page
// @Summary Start provider login
// @Description Redirect to the external provider's authorization page
// @Tags authentication
// @Param provider query string true "Provider name"
// @Success 302 "Redirect to provider"
// @Failure 400 {object} ErrorResponse
// @Router /v1/auth/authorize [get]
func (h *OAuthHandler) Authorize(c echo.Context) error {
	provider := c.QueryParam("provider")
	if provider == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "provider is required"})
	}

	state, err := generateState()
	if err != nil {
		h.logger.Error("failed to generate oauth state", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to start provider login"})
	}

	authURL, err := h.providerGateway.AuthCodeURL(provider, state)
	if err != nil {
		return respondError(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.cookieOpts.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("provider login started",
		"provider", provider,
		"ip", c.RealIP())
	return c.Redirect(http.StatusFound, authURL)
}

// Callback completes the authorization code flow. The exchange is
// fail-closed: any provider error redirects to the error page with
// nothing persisted.
// @Summary Provider callback
// @Description Complete the authorization code flow started by Authorize
// @Tags authentication
// @Param provider query string false "Provider name"
// @Param code query string false "Authorization code"
// @Param error query string false "Provider error code"
// @Success 302 "Redirect to dashboard or error page"
// @Router /v1/auth/callback [get]
func (h *OAuthHandler) Callback(c echo.Context) error {
	ctx := c.Request().Context()

	provider := c.QueryParam("provider")
	code := c.QueryParam("code")
	providerError := c.QueryParam("error")

	if providerError != "" {
		h.logger.Warn("provider refused the authorization",
			"provider", provider,
			"error", providerError)
		return h.redirectError(c, providerError, provider)
	}

	if provider == "" || code == "" {
		return h.redirectError(c, "missing_params", provider)
	}

	if !h.stateMatches(c) {
		h.logger.Warn("oauth state mismatch", "provider", provider, "ip", c.RealIP())
		return h.redirectError(c, "state_mismatch", provider)
	}

	response, err := h.authUsecase.CompleteProviderLogin(ctx, provider, code)
	if err != nil {
		metrics.RecordProviderLogin(provider, false)
		h.logger.Error("provider login failed",
			"provider", provider,
			"error", err)
		return h.redirectError(c, "exchange_failed", provider)
	}
	metrics.RecordProviderLogin(provider, true)

	cookies.SetCredential(c.Response(), response.Token, response.ExpiresAt, h.cookieOpts)
	h.clearStateCookie(c)

	h.logger.Info("provider login completed",
		"provider", provider,
		"identity_id", response.User.ID)
	return c.Redirect(http.StatusFound, successRedirect)
}

// stateMatches compares the state query parameter against the cookie
// set by Authorize. A missing cookie passes: API clients driving the
// flow themselves carry their own state.
func (h *OAuthHandler) stateMatches(c echo.Context) bool {
	cookie, err := c.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" {
		return true
	}
	return cookie.Value == c.QueryParam("state")
}

func (h *OAuthHandler) clearStateCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (h *OAuthHandler) redirectError(c echo.Context, errCode, provider string) error {
	q := url.Values{}
	q.Set("error", errCode)
	if provider != "" {
		q.Set("provider", provider)
	}
	return c.Redirect(http.StatusFound, errorRedirectURL(q))
}

func errorRedirectURL(q url.Values) string {
	return errorRedirect + "?" + q.Encode()
}

func generateState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
