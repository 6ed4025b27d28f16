package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-service/app/domain"
	"session-service/app/utils/logger"
)

func createTestTokenRepository(t *testing.T) (*TokenRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	repo := NewTokenRepository(mockDB, testLogger).(*TokenRepository)
	return repo, mockDB
}

func TestTokenRepository_CreateAndGet(t *testing.T) {
	repo, mockDB := createTestTokenRepository(t)
	defer mockDB.Close()

	token, err := domain.NewRefreshToken(uuid.New(), 30*24*time.Hour)
	require.NoError(t, err)

	mockDB.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(token.Token, token.IdentityID, token.ExpiresAt, token.RevokedAt, token.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), token))

	mockDB.ExpectQuery("SELECT (.+) FROM refresh_tokens WHERE token").
		WithArgs(token.Token).
		WillReturnRows(pgxmock.NewRows([]string{
			"token", "identity_id", "expires_at", "revoked_at", "created_at",
		}).AddRow(token.Token, token.IdentityID, token.ExpiresAt, token.RevokedAt, token.CreatedAt))

	got, err := repo.GetByToken(context.Background(), token.Token)
	require.NoError(t, err)
	assert.Equal(t, token.IdentityID, got.IdentityID)
	assert.True(t, got.IsValid())
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestTokenRepository_GetByToken_Unknown(t *testing.T) {
	repo, mockDB := createTestTokenRepository(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT (.+) FROM refresh_tokens WHERE token").
		WithArgs("unknown").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByToken(context.Background(), "unknown")
	assert.ErrorIs(t, err, domain.ErrRefreshTokenInvalid)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestTokenRepository_Revoke(t *testing.T) {
	repo, mockDB := createTestTokenRepository(t)
	defer mockDB.Close()

	mockDB.ExpectExec("UPDATE refresh_tokens SET revoked_at").
		WithArgs("tok-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.Revoke(context.Background(), "tok-1"))

	// revoking an already-revoked token reports invalid
	mockDB.ExpectExec("UPDATE refresh_tokens SET revoked_at").
		WithArgs("tok-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.Revoke(context.Background(), "tok-1"), domain.ErrRefreshTokenInvalid)

	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestTokenRepository_DeleteExpired(t *testing.T) {
	repo, mockDB := createTestTokenRepository(t)
	defer mockDB.Close()

	mockDB.ExpectExec("DELETE FROM refresh_tokens WHERE expires_at").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	deleted, err := repo.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}
