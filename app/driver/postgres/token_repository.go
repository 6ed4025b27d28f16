package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"session-service/app/domain"
	"session-service/app/port"
)

// TokenRepository implements port.RefreshTokenRepositoryPort for PostgreSQL
type TokenRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewTokenRepository creates a new PostgreSQL refresh token repository
func NewTokenRepository(db DatabaseIface, logger *slog.Logger) port.RefreshTokenRepositoryPort {
	return &TokenRepository{
		db:     db,
		logger: logger.With("component", "token_repository"),
	}
}

// Create inserts a new refresh token
func (r *TokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (
			token, identity_id, expires_at, revoked_at, created_at
		) VALUES (
			$1, $2, $3, $4, $5
		)`

	_, err := r.db.Exec(ctx, query,
		token.Token,
		token.IdentityID,
		token.ExpiresAt,
		token.RevokedAt,
		token.CreatedAt,
	)

	if err != nil {
		r.logger.Error("failed to create refresh token", "identity_id", token.IdentityID, "error", err)
		return fmt.Errorf("failed to create refresh token: %w", err)
	}

	return nil
}

// GetByToken retrieves a refresh token by value
func (r *TokenRepository) GetByToken(ctx context.Context, tokenString string) (*domain.RefreshToken, error) {
	query := `
		SELECT token, identity_id, expires_at, revoked_at, created_at
		FROM refresh_tokens WHERE token = $1`

	var token domain.RefreshToken
	err := r.db.QueryRow(ctx, query, tokenString).Scan(
		&token.Token,
		&token.IdentityID,
		&token.ExpiresAt,
		&token.RevokedAt,
		&token.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRefreshTokenInvalid
		}
		r.logger.Error("failed to get refresh token", "error", err)
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return &token, nil
}

// Revoke marks a refresh token as spent
func (r *TokenRepository) Revoke(ctx context.Context, tokenString string) error {
	query := `UPDATE refresh_tokens SET revoked_at = NOW() WHERE token = $1 AND revoked_at IS NULL`

	result, err := r.db.Exec(ctx, query, tokenString)
	if err != nil {
		r.logger.Error("failed to revoke refresh token", "error", err)
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRefreshTokenInvalid
	}

	return nil
}

// RevokeAllForIdentity revokes every live refresh token of an identity.
// Used when an identity is suspended or all sessions are force-closed.
func (r *TokenRepository) RevokeAllForIdentity(ctx context.Context, identityID uuid.UUID) error {
	query := `UPDATE refresh_tokens SET revoked_at = NOW() WHERE identity_id = $1 AND revoked_at IS NULL`

	result, err := r.db.Exec(ctx, query, identityID)
	if err != nil {
		r.logger.Error("failed to revoke refresh tokens", "identity_id", identityID, "error", err)
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	r.logger.Info("refresh tokens revoked",
		"identity_id", identityID,
		"count", result.RowsAffected())
	return nil
}

// DeleteExpired removes refresh tokens past their expiry
func (r *TokenRepository) DeleteExpired(ctx context.Context) (int, error) {
	query := `DELETE FROM refresh_tokens WHERE expires_at < NOW()`

	result, err := r.db.Exec(ctx, query)
	if err != nil {
		r.logger.Error("failed to delete expired refresh tokens", "error", err)
		return 0, fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}

	deleted := int(result.RowsAffected())
	if deleted > 0 {
		r.logger.Info("expired refresh tokens deleted", "count", deleted)
	}
	return deleted, nil
}
