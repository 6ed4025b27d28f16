package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"session-service/app/domain"
	"session-service/app/metrics"
	"session-service/app/port"
	"session-service/app/rest/cookies"
	apperrors "session-service/app/utils/errors"
	"session-service/app/utils/validator"
)

// AuthHandler handles credential lifecycle HTTP requests
type AuthHandler struct {
	authUsecase port.AuthUsecase
	validator   *validator.Validator
	cookieOpts  cookies.Options
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase port.AuthUsecase, cookieOpts cookies.Options, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator.New(),
		cookieOpts:  cookieOpts,
		logger:      logger,
	}
}

// Login authenticates with email and password
// @Summary Log in
// @Description Authenticate with email and password and receive a credential token
// @Tags authentication
// @Accept json
// @Produce json
// @Param body body domain.LoginRequest true "Login request"
// @Success 200 {object} domain.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := h.validator.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	response, err := h.authUsecase.Login(ctx, &req)
	if err != nil {
		metrics.RecordLogin(false)
		h.logger.Warn("login refused",
			"email", req.Email,
			"ip", c.RealIP())
		return respondError(c, err)
	}

	metrics.RecordLogin(true)
	cookies.SetCredential(c.Response(), response.Token, response.ExpiresAt, h.cookieOpts)
	return c.JSON(http.StatusOK, response)
}

// Register creates a new identity
// @Summary Register
// @Description Create a password identity and receive a first credential
// @Tags authentication
// @Accept json
// @Produce json
// @Param body body domain.RegisterRequest true "Registration request"
// @Success 201 {object} domain.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := h.validator.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	response, err := h.authUsecase.Register(ctx, &req)
	if err != nil {
		return respondError(c, err)
	}

	cookies.SetCredential(c.Response(), response.Token, response.ExpiresAt, h.cookieOpts)
	return c.JSON(http.StatusCreated, response)
}

// Refresh exchanges a refresh token for a new credential
// @Summary Refresh credential
// @Description Exchange a live refresh token for a fresh credential; the presented token is revoked
// @Tags authentication
// @Accept json
// @Produce json
// @Param body body domain.RefreshRequest true "Refresh request"
// @Success 200 {object} domain.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "refresh_token is required"})
	}

	response, err := h.authUsecase.Refresh(ctx, &req)
	if err != nil {
		return respondError(c, err)
	}

	cookies.SetCredential(c.Response(), response.Token, response.ExpiresAt, h.cookieOpts)
	return c.JSON(http.StatusOK, response)
}

// Verify reports whether the presented credential is still live
// @Summary Verify credential
// @Description Check the bearer credential against the server-side session record
// @Tags authentication
// @Produce json
// @Success 200 {object} domain.VerifyResponse
// @Failure 401 {object} ErrorResponse
// @Router /v1/auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	ctx := c.Request().Context()

	token := extractBearerToken(c)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "credential required"})
	}

	response, err := h.authUsecase.Verify(ctx, token)
	if err != nil {
		h.logger.Error("verify failed", "error", err)
		return respondError(c, err)
	}

	metrics.RecordVerification(response.Valid)
	return c.JSON(http.StatusOK, response)
}

// Logout revokes the presented credential
// @Summary Log out
// @Description Revoke the bearer credential's session record. Always acknowledged.
// @Tags authentication
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	// revoke whatever token is presented; an absent token is still a
	// successful logout from the client's point of view
	if token := extractBearerToken(c); token != "" {
		if err := h.authUsecase.Logout(ctx, token); err != nil {
			h.logger.Error("logout failed", "error", err)
		}
	}

	metrics.RecordLogout()
	cookies.ClearCredential(c.Response(), h.cookieOpts)
	return c.JSON(http.StatusOK, SuccessResponse{Message: "logged out"})
}

// extractBearerToken pulls the credential token out of the request,
// preferring the Authorization header over the cookie.
func extractBearerToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	if cookie, err := c.Cookie(cookies.CredentialName); err == nil {
		return cookie.Value
	}
	return ""
}

// respondError maps domain errors onto wire errors with the right
// status code. Unknown errors collapse to a generic 500 so internals
// never leak.
func respondError(c echo.Context, err error) error {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return c.JSON(appErr.StatusCode, ErrorResponse{Error: appErr.Message, Code: string(appErr.Code)})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "invalid email or password",
			Code:  string(apperrors.ErrCodeInvalidCredentials),
		})
	case errors.Is(err, domain.ErrRefreshTokenInvalid), errors.Is(err, domain.ErrTokenInvalid):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "invalid token",
			Code:  string(apperrors.ErrCodeInvalidToken),
		})
	case errors.Is(err, domain.ErrSessionExpired):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "session expired",
			Code:  string(apperrors.ErrCodeSessionExpired),
		})
	case errors.Is(err, domain.ErrIdentityExists):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error: "an account with this email already exists",
			Code:  string(apperrors.ErrCodeIdentityExists),
		})
	case errors.Is(err, domain.ErrIdentitySuspended):
		return c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "account is suspended",
			Code:  string(apperrors.ErrCodeIdentitySuspended),
		})
	case errors.Is(err, domain.ErrIdentityNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "identity not found",
			Code:  string(apperrors.ErrCodeIdentityNotFound),
		})
	case errors.Is(err, domain.ErrTenantMismatch):
		return c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "tenant not in membership set",
			Code:  string(apperrors.ErrCodeTenantMismatch),
		})
	case errors.Is(err, domain.ErrTenantSuspended):
		return c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "tenant is suspended",
			Code:  string(apperrors.ErrCodeTenantSuspended),
		})
	case errors.Is(err, domain.ErrTenantNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "tenant not found",
			Code:  string(apperrors.ErrCodeTenantNotFound),
		})
	case errors.Is(err, domain.ErrProviderUnknown):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "unknown identity provider",
			Code:  string(apperrors.ErrCodeProviderUnknown),
		})
	case errors.Is(err, domain.ErrExchangeFailed):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "provider code exchange failed",
			Code:  string(apperrors.ErrCodeOAuthExchangeFailed),
		})
	case errors.Is(err, domain.ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error: "resource conflict",
			Code:  string(apperrors.ErrCodeConflict),
		})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "access denied",
			Code:  string(apperrors.ErrCodeForbidden),
		})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "internal error",
			Code:  string(apperrors.ErrCodeInternalError),
		})
	}
}

// Response types shared by the handlers

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}
