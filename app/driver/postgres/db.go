package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"session-service/app/config"
)

// Pool sizing. Sessions are short-lived and chatty, so we keep a warm
// floor of connections instead of letting the pool drain between bursts.
const (
	poolMaxConns     = int32(25)
	poolMinConns     = int32(5)
	poolConnLifetime = time.Hour
	poolConnIdleTime = 30 * time.Minute

	connectTimeout = 30 * time.Second
	pingTimeout    = 5 * time.Second
)

// DB wraps a pgx connection pool together with the logger used for
// lifecycle events.
type DB struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewConnection opens a pgx pool against the configured postgres instance
// and verifies it with a ping before handing it out.
func NewConnection(cfg *config.Config, logger *slog.Logger) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	poolConfig.MaxConns = poolMaxConns
	poolConfig.MinConns = poolMinConns
	poolConfig.MaxConnLifetime = poolConnLifetime
	poolConfig.MaxConnIdleTime = poolConnIdleTime

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database pool ready",
		"host", cfg.DatabaseHost,
		"database", cfg.DatabaseName,
		"max_conns", poolConfig.MaxConns,
		"min_conns", poolConfig.MinConns)

	return &DB{pool: pool, logger: logger}, nil
}

// Pool exposes the underlying pgx pool for repositories.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// HealthCheck pings the database with a short deadline so the health
// endpoint cannot hang on a wedged pool.
func (db *DB) HealthCheck(ctx context.Context) error {
	if db.pool == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return db.pool.Ping(ctx)
}

// Close releases the pool. Safe to call on a DB that never connected.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
		db.logger.Info("database pool closed")
	}
}

func buildDSN(cfg *config.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.DatabaseUser, cfg.DatabasePassword),
		Host:     fmt.Sprintf("%s:%s", cfg.DatabaseHost, cfg.DatabasePort),
		Path:     cfg.DatabaseName,
		RawQuery: url.Values{"sslmode": []string{cfg.DatabaseSSLMode}}.Encode(),
	}
	return u.String()
}
