package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-service/app/domain"
	"session-service/app/utils/logger"
)

// Helper function to create a test identity repository with mocked database
func createTestIdentityRepository(t *testing.T) (*IdentityRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	repo := NewIdentityRepository(mockDB, testLogger).(*IdentityRepository)
	return repo, mockDB
}

func createTestIdentity(t *testing.T) *domain.Identity {
	t.Helper()

	identity, err := domain.NewIdentity("demo@vyomtech.com", "Demo User")
	require.NoError(t, err)
	identity.PasswordHash = "$2a$10$testhash"
	return identity
}

func identityRows(identity *domain.Identity) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "email", "name", "password_hash", "status",
		"provider", "provider_user_id", "created_at", "updated_at",
	}).AddRow(
		identity.ID, identity.Email, identity.Name, identity.PasswordHash, identity.Status,
		identity.Provider, identity.ProviderUserID, identity.CreatedAt, identity.UpdatedAt,
	)
}

func TestIdentityRepository_Create(t *testing.T) {
	tests := []struct {
		name    string
		setupDB func(pgxmock.PgxPoolIface, *domain.Identity)
		wantErr bool
	}{
		{
			name: "successful creation",
			setupDB: func(mockDB pgxmock.PgxPoolIface, identity *domain.Identity) {
				mockDB.ExpectExec("INSERT INTO identities").
					WithArgs(
						identity.ID,
						identity.Email,
						identity.Name,
						identity.PasswordHash,
						identity.Status,
						identity.Provider,
						identity.ProviderUserID,
						identity.CreatedAt,
						identity.UpdatedAt,
					).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
			wantErr: false,
		},
		{
			name: "duplicate email",
			setupDB: func(mockDB pgxmock.PgxPoolIface, identity *domain.Identity) {
				mockDB.ExpectExec("INSERT INTO identities").
					WithArgs(
						identity.ID,
						identity.Email,
						identity.Name,
						identity.PasswordHash,
						identity.Status,
						identity.Provider,
						identity.ProviderUserID,
						identity.CreatedAt,
						identity.UpdatedAt,
					).
					WillReturnError(errors.New("duplicate key value violates unique constraint"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := createTestIdentityRepository(t)
			defer mockDB.Close()

			identity := createTestIdentity(t)
			tt.setupDB(mockDB, identity)

			err := repo.Create(context.Background(), identity)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestIdentityRepository_GetByEmail(t *testing.T) {
	repo, mockDB := createTestIdentityRepository(t)
	defer mockDB.Close()

	identity := createTestIdentity(t)
	mockDB.ExpectQuery("SELECT (.+) FROM identities WHERE email").
		WithArgs(identity.Email).
		WillReturnRows(identityRows(identity))

	got, err := repo.GetByEmail(context.Background(), identity.Email)
	require.NoError(t, err)
	assert.Equal(t, identity.ID, got.ID)
	assert.Equal(t, identity.Email, got.Email)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestIdentityRepository_GetByEmail_NotFound(t *testing.T) {
	repo, mockDB := createTestIdentityRepository(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT (.+) FROM identities WHERE email").
		WithArgs("absent@vyomtech.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "absent@vyomtech.com")
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestIdentityRepository_GetByProvider(t *testing.T) {
	repo, mockDB := createTestIdentityRepository(t)
	defer mockDB.Close()

	identity, err := domain.NewProviderIdentity("google", "g-123", "demo@vyomtech.com", "Demo User")
	require.NoError(t, err)

	mockDB.ExpectQuery("SELECT (.+) FROM identities WHERE provider").
		WithArgs("google", "g-123").
		WillReturnRows(identityRows(identity))

	got, err := repo.GetByProvider(context.Background(), "google", "g-123")
	require.NoError(t, err)
	assert.Equal(t, "g-123", got.ProviderUserID)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestIdentityRepository_Update_NotFound(t *testing.T) {
	repo, mockDB := createTestIdentityRepository(t)
	defer mockDB.Close()

	identity := createTestIdentity(t)
	mockDB.ExpectExec("UPDATE identities SET").
		WithArgs(
			identity.ID,
			identity.Email,
			identity.Name,
			identity.PasswordHash,
			identity.Status,
			identity.Provider,
			identity.ProviderUserID,
			identity.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), identity)
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestIdentityRepository_Delete(t *testing.T) {
	repo, mockDB := createTestIdentityRepository(t)
	defer mockDB.Close()

	identity := createTestIdentity(t)
	mockDB.ExpectExec("DELETE FROM identities").
		WithArgs(identity.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, repo.Delete(context.Background(), identity.ID))
	assert.NoError(t, mockDB.ExpectationsWereMet())
}
