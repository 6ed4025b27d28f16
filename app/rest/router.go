package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"session-service/app/metrics"
	"session-service/app/port"
	"session-service/app/rest/cookies"
	"session-service/app/rest/handlers"
	custommw "session-service/app/rest/middleware"
	"session-service/app/utils/security"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger        *slog.Logger
	AuthUsecase   port.AuthUsecase
	TenantUsecase port.TenantUsecase
	ProviderGW    port.ProviderGateway
	CookieOptions cookies.Options
	HealthChecks  map[string]handlers.DependencyCheck
	EnableDebug   bool
	EnableMetrics bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.Debug = config.EnableDebug

	// Create handlers
	authHandler := handlers.NewAuthHandler(config.AuthUsecase, config.CookieOptions, config.Logger)
	oauthHandler := handlers.NewOAuthHandler(config.AuthUsecase, config.ProviderGW, config.CookieOptions, config.Logger)
	tenantHandler := handlers.NewTenantHandler(config.TenantUsecase, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.HealthChecks, config.Logger)

	// Create middleware
	authMiddleware := custommw.NewAuthMiddleware(config.AuthUsecase, config.Logger)
	rateLimiter := custommw.NewRateLimiter()
	screener := security.NewScreener(config.Logger)

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.DefaultCORS())
	e.Use(custommw.SecurityHeaders())
	e.Use(custommw.Screening(screener))
	e.Use(rateLimiter.RateLimit())

	if config.EnableMetrics {
		e.Use(custommw.Metrics())
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}, error=${error}\n",
	}))

	// API versioning
	v1 := e.Group("/v1")

	// Health endpoints (no auth required)
	v1.GET("/health", healthHandler.HealthCheck)
	v1.GET("/ready", healthHandler.ReadinessCheck)
	v1.GET("/live", healthHandler.LivenessCheck)

	// Authentication endpoints
	auth := v1.Group("/auth")

	// Public auth endpoints (no auth required)
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/verify", authHandler.Verify)
	auth.POST("/logout", authHandler.Logout)

	// OAuth authorization code flow
	auth.GET("/authorize", oauthHandler.Authorize)
	auth.GET("/callback", oauthHandler.Callback)

	// Tenant endpoints (require authentication)
	tenants := v1.Group("/tenants")
	tenants.Use(authMiddleware.RequireAuth())
	tenants.GET("/memberships", tenantHandler.ListMemberships)
	tenants.POST("", tenantHandler.CreateTenant)
	tenants.GET("/:id", tenantHandler.GetTenant)
	tenants.POST("/:id/switch", tenantHandler.SwitchTenant)

	return e
}
