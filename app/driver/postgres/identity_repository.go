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

// IdentityRepository implements port.IdentityRepositoryPort for PostgreSQL
type IdentityRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewIdentityRepository creates a new PostgreSQL identity repository
func NewIdentityRepository(db DatabaseIface, logger *slog.Logger) port.IdentityRepositoryPort {
	return &IdentityRepository{
		db:     db,
		logger: logger.With("component", "identity_repository"),
	}
}

const identityColumns = `id, email, name, password_hash, status, provider, provider_user_id, created_at, updated_at`

// Create inserts a new identity
func (r *IdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	query := `
		INSERT INTO identities (
			id, email, name, password_hash, status, provider, provider_user_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)`

	r.logger.Info("creating identity", "identity_id", identity.ID, "email", identity.Email)

	_, err := r.db.Exec(ctx, query,
		identity.ID,
		identity.Email,
		identity.Name,
		identity.PasswordHash,
		identity.Status,
		identity.Provider,
		identity.ProviderUserID,
		identity.CreatedAt,
		identity.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("failed to create identity", "identity_id", identity.ID, "error", err)
		return fmt.Errorf("failed to create identity: %w", err)
	}

	return nil
}

// GetByID retrieves an identity by ID
func (r *IdentityRepository) GetByID(ctx context.Context, identityID uuid.UUID) (*domain.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM identities WHERE id = $1`
	return r.scanIdentity(r.db.QueryRow(ctx, query, identityID))
}

// GetByEmail retrieves an identity by email
func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM identities WHERE email = $1`
	return r.scanIdentity(r.db.QueryRow(ctx, query, email))
}

// GetByProvider retrieves an identity by its external provider link
func (r *IdentityRepository) GetByProvider(ctx context.Context, provider, providerUserID string) (*domain.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM identities WHERE provider = $1 AND provider_user_id = $2`
	return r.scanIdentity(r.db.QueryRow(ctx, query, provider, providerUserID))
}

// Update updates an existing identity
func (r *IdentityRepository) Update(ctx context.Context, identity *domain.Identity) error {
	query := `
		UPDATE identities SET
			email = $2, name = $3, password_hash = $4, status = $5,
			provider = $6, provider_user_id = $7, updated_at = $8
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		identity.ID,
		identity.Email,
		identity.Name,
		identity.PasswordHash,
		identity.Status,
		identity.Provider,
		identity.ProviderUserID,
		identity.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("failed to update identity", "identity_id", identity.ID, "error", err)
		return fmt.Errorf("failed to update identity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}

	return nil
}

// Delete removes an identity
func (r *IdentityRepository) Delete(ctx context.Context, identityID uuid.UUID) error {
	query := `DELETE FROM identities WHERE id = $1`

	result, err := r.db.Exec(ctx, query, identityID)
	if err != nil {
		r.logger.Error("failed to delete identity", "identity_id", identityID, "error", err)
		return fmt.Errorf("failed to delete identity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}

	return nil
}

func (r *IdentityRepository) scanIdentity(row pgx.Row) (*domain.Identity, error) {
	var identity domain.Identity
	err := row.Scan(
		&identity.ID,
		&identity.Email,
		&identity.Name,
		&identity.PasswordHash,
		&identity.Status,
		&identity.Provider,
		&identity.ProviderUserID,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIdentityNotFound
		}
		r.logger.Error("failed to scan identity", "error", err)
		return nil, fmt.Errorf("failed to scan identity: %w", err)
	}

	return &identity, nil
}
