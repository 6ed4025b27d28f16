package usecase

import (
	"context"
	"log/slog"
	"time"

	"session-service/app/port"
)

// TokenCleanupUsecase periodically removes expired refresh tokens.
// Session records expire on their own through the store's TTL; refresh
// tokens live in Postgres and need sweeping.
type TokenCleanupUsecase struct {
	refreshRepo port.RefreshTokenRepositoryPort
	interval    time.Duration
	logger      *slog.Logger
}

// NewTokenCleanupUsecase creates a new TokenCleanupUsecase
func NewTokenCleanupUsecase(
	refreshRepo port.RefreshTokenRepositoryPort,
	interval time.Duration,
	logger *slog.Logger,
) *TokenCleanupUsecase {
	if interval <= 0 {
		interval = time.Hour
	}
	return &TokenCleanupUsecase{
		refreshRepo: refreshRepo,
		interval:    interval,
		logger:      logger.With("component", "token_cleanup_usecase"),
	}
}

// CleanupExpired runs one sweep
func (u *TokenCleanupUsecase) CleanupExpired(ctx context.Context) (int, error) {
	deleted, err := u.refreshRepo.DeleteExpired(ctx)
	if err != nil {
		u.logger.Error("refresh token cleanup failed", "error", err)
		return 0, err
	}

	if deleted > 0 {
		u.logger.Info("refresh token cleanup completed", "deleted", deleted)
	}
	return deleted, nil
}

// Run sweeps on the configured interval until the context is cancelled.
// Intended to be started as a goroutine from the server entry point.
func (u *TokenCleanupUsecase) Run(ctx context.Context) {
	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	u.logger.Info("refresh token cleanup started", "interval", u.interval)

	for {
		select {
		case <-ctx.Done():
			u.logger.Info("refresh token cleanup stopped")
			return
		case <-ticker.C:
			if _, err := u.CleanupExpired(ctx); err != nil {
				// keep sweeping; transient database errors resolve themselves
				continue
			}
		}
	}
}
