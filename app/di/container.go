package di

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"

	"session-service/app/config"
	"session-service/app/driver/postgres"
	redisdriver "session-service/app/driver/redis"
	"session-service/app/gateway"
	"session-service/app/port"
	"session-service/app/rest"
	"session-service/app/rest/cookies"
	"session-service/app/rest/handlers"
	"session-service/app/token"
	"session-service/app/usecase"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB    *postgres.DB
	Redis *goredis.Client

	// Gateways
	IdentityGateway port.IdentityGateway
	ProviderGateway port.ProviderGateway

	// Usecases
	AuthUsecase   port.AuthUsecase
	TenantUsecase port.TenantUsecase
	TokenCleanup  *usecase.TokenCleanupUsecase
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	var err error

	container.DB, err = postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	container.Redis = goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Repositories
	identityRepo := postgres.NewIdentityRepository(container.DB.Pool(), logger)
	tenantRepo := postgres.NewTenantRepository(container.DB.Pool(), logger)
	tokenRepo := postgres.NewTokenRepository(container.DB.Pool(), logger)

	// Gateways
	container.IdentityGateway = gateway.NewIdentityGateway(identityRepo, logger)
	container.ProviderGateway, err = gateway.NewProviderGateway(providerConfigs(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider gateway: %w", err)
	}

	// Token issuance and session records
	tokenIssuer := token.NewIssuer(token.Config{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.SessionTTL,
	})
	records := redisdriver.NewRecordStore(container.Redis)

	// Usecases
	container.AuthUsecase = usecase.NewAuthUseCase(
		container.IdentityGateway,
		container.ProviderGateway,
		tokenIssuer,
		records,
		tokenRepo,
		cfg.RefreshTTL,
		logger,
	)
	container.TenantUsecase = usecase.NewTenantUseCase(tenantRepo, records, logger)
	container.TokenCleanup = usecase.NewTokenCleanupUsecase(tokenRepo, cfg.TokenCleanupInterval, logger)

	logger.Info("container initialized")
	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	routerConfig := rest.RouterConfig{
		Logger:        c.Logger,
		AuthUsecase:   c.AuthUsecase,
		TenantUsecase: c.TenantUsecase,
		ProviderGW:    c.ProviderGateway,
		CookieOptions: cookies.Options{
			Secure:   c.Config.CookieSecure,
			SameSite: http.SameSiteStrictMode,
		},
		HealthChecks: map[string]handlers.DependencyCheck{
			"database": c.DB.HealthCheck,
			"redis": func(ctx context.Context) error {
				return c.Redis.Ping(ctx).Err()
			},
		},
		EnableDebug:   c.Config.EnableDebug,
		EnableMetrics: c.Config.EnableMetrics,
	}

	return rest.NewRouter(routerConfig)
}

// StartBackgroundWorkers launches the periodic jobs; they stop when the
// context is canceled.
func (c *Container) StartBackgroundWorkers(ctx context.Context) {
	go c.TokenCleanup.Run(ctx)
}

// Close closes all resources
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Error("failed to close redis client", "error", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}

	c.Logger.Info("container closed")
	return nil
}

func providerConfigs(cfg *config.Config) []gateway.ProviderConfig {
	configs := make([]gateway.ProviderConfig, 0, len(cfg.Providers))
	for _, p := range cfg.Providers {
		configs = append(configs, gateway.ProviderConfig{
			Name:         p.Name,
			ClientID:     p.ClientID,
			ClientSecret: p.ClientSecret,
			RedirectURL:  p.RedirectURL,
			AuthURL:      p.AuthURL,
			TokenURL:     p.TokenURL,
			UserInfoURL:  p.UserInfoURL,
			Scopes:       p.Scopes,
		})
	}
	return configs
}
