package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"session-service/app/port"
	"session-service/app/rest/cookies"
)

// AuthMiddleware authenticates requests against the credential token
// and its server-side session record.
type AuthMiddleware struct {
	authUsecase port.AuthUsecase
	logger      *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authUsecase port.AuthUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authUsecase: authUsecase,
		logger:      logger,
	}
}

// RequireAuth rejects requests without a live credential. On success
// the identity and active tenant are placed in the request context.
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			token := m.extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			verdict, err := m.authUsecase.Verify(ctx, token)
			if err != nil {
				m.logger.Error("credential verification failed", "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "verification unavailable")
			}
			if !verdict.Valid || verdict.User == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credential")
			}

			// a tenant header may only name the session's active tenant;
			// before the first confirmed switch the record carries no
			// tenant and the header is the client's provisional default
			if header := c.Request().Header.Get("X-Tenant-ID"); header != "" && verdict.User.TenantID != uuid.Nil {
				headerTenant, err := uuid.Parse(header)
				if err != nil || headerTenant != verdict.User.TenantID {
					m.logger.Warn("tenant header does not match session",
						"identity_id", verdict.User.ID,
						"header_tenant", header)
					return echo.NewHTTPError(http.StatusForbidden, "tenant not active on this session")
				}
			}

			c.Set("identity_id", verdict.User.ID.String())
			c.Set("tenant_id", verdict.User.TenantID.String())
			c.Set("identity_email", verdict.User.Email)
			c.Set("identity_name", verdict.User.Name)

			return next(c)
		}
	}
}

// OptionalAuth populates the identity context when a live credential is
// present and lets the request through either way.
func (m *AuthMiddleware) OptionalAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			token := m.extractToken(c)
			if token == "" {
				return next(c)
			}

			verdict, err := m.authUsecase.Verify(ctx, token)
			if err != nil || !verdict.Valid || verdict.User == nil {
				m.logger.Debug("optional auth failed", "error", err)
				return next(c)
			}

			c.Set("identity_id", verdict.User.ID.String())
			c.Set("tenant_id", verdict.User.TenantID.String())
			c.Set("identity_email", verdict.User.Email)
			c.Set("identity_name", verdict.User.Name)

			return next(c)
		}
	}
}

// extractToken prefers the Authorization header over the credential
// cookie issued to browser clients.
func (m *AuthMiddleware) extractToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	if cookie, err := c.Cookie(cookies.CredentialName); err == nil {
		return cookie.Value
	}
	return ""
}
