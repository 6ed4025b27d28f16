package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"session-service/app/domain"
	mock_port "session-service/app/mocks"
)

type authMocks struct {
	identityGateway *mock_port.MockIdentityGateway
	providerGateway *mock_port.MockProviderGateway
	tokenIssuer     *mock_port.MockTokenIssuer
	records         *mock_port.MockSessionRecordStore
	refreshRepo     *mock_port.MockRefreshTokenRepositoryPort
}

func newAuthUseCaseWithMocks(t *testing.T) (*AuthUseCase, *authMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &authMocks{
		identityGateway: mock_port.NewMockIdentityGateway(ctrl),
		providerGateway: mock_port.NewMockProviderGateway(ctrl),
		tokenIssuer:     mock_port.NewMockTokenIssuer(ctrl),
		records:         mock_port.NewMockSessionRecordStore(ctrl),
		refreshRepo:     mock_port.NewMockRefreshTokenRepositoryPort(ctrl),
	}

	uc := NewAuthUseCase(
		m.identityGateway,
		m.providerGateway,
		m.tokenIssuer,
		m.records,
		m.refreshRepo,
		30*24*time.Hour,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return uc, m
}

func activeIdentity(t *testing.T) *domain.Identity {
	t.Helper()
	identity, err := domain.NewIdentity("demo@vyomtech.com", "Demo User")
	require.NoError(t, err)
	identity.PasswordHash = "$2a$10$storedhash"
	return identity
}

// expectIssue wires the happy-path credential issuance: token mint,
// session record creation and refresh token storage.
func expectIssue(m *authMocks, identity *domain.Identity, token string) {
	expiresAt := time.Now().Add(time.Hour)
	m.tokenIssuer.EXPECT().Issue(identity).Return(token, expiresAt, nil)
	m.records.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.refreshRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
}

func TestAuthUseCase_Login(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*testing.T, *authMocks)
		wantErr    error
	}{
		{
			name: "successful login",
			setupMocks: func(t *testing.T, m *authMocks) {
				identity := activeIdentity(t)
				m.identityGateway.EXPECT().
					GetIdentityByEmail(gomock.Any(), "demo@vyomtech.com").
					Return(identity, nil)
				m.identityGateway.EXPECT().
					VerifyPassword(identity.PasswordHash, "correct-password").
					Return(nil)
				expectIssue(m, identity, "issued-token")
			},
		},
		{
			name: "unknown email",
			setupMocks: func(t *testing.T, m *authMocks) {
				m.identityGateway.EXPECT().
					GetIdentityByEmail(gomock.Any(), "demo@vyomtech.com").
					Return(nil, domain.ErrIdentityNotFound)
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			setupMocks: func(t *testing.T, m *authMocks) {
				identity := activeIdentity(t)
				m.identityGateway.EXPECT().
					GetIdentityByEmail(gomock.Any(), "demo@vyomtech.com").
					Return(identity, nil)
				m.identityGateway.EXPECT().
					VerifyPassword(identity.PasswordHash, "correct-password").
					Return(domain.ErrInvalidCredentials)
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name: "suspended identity",
			setupMocks: func(t *testing.T, m *authMocks) {
				identity := activeIdentity(t)
				identity.Suspend()
				m.identityGateway.EXPECT().
					GetIdentityByEmail(gomock.Any(), "demo@vyomtech.com").
					Return(identity, nil)
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name: "record store failure surfaces",
			setupMocks: func(t *testing.T, m *authMocks) {
				identity := activeIdentity(t)
				m.identityGateway.EXPECT().
					GetIdentityByEmail(gomock.Any(), "demo@vyomtech.com").
					Return(identity, nil)
				m.identityGateway.EXPECT().
					VerifyPassword(identity.PasswordHash, "correct-password").
					Return(nil)
				m.tokenIssuer.EXPECT().Issue(identity).Return("tok", time.Now().Add(time.Hour), nil)
				m.records.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
			},
			wantErr: nil, // generic error, checked below
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, m := newAuthUseCaseWithMocks(t)
			tt.setupMocks(t, m)

			resp, err := uc.Login(context.Background(), &domain.LoginRequest{
				Email:    "demo@vyomtech.com",
				Password: "correct-password",
			})

			switch tt.name {
			case "successful login":
				require.NoError(t, err)
				assert.Equal(t, "issued-token", resp.Token)
				assert.NotEmpty(t, resp.RefreshToken)
				assert.Equal(t, "demo@vyomtech.com", resp.User.Email)
			case "record store failure surfaces":
				require.Error(t, err)
				assert.Nil(t, resp)
			default:
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			}
		})
	}
}

func TestAuthUseCase_Refresh(t *testing.T) {
	t.Run("rotates the refresh token", func(t *testing.T) {
		uc, m := newAuthUseCaseWithMocks(t)

		identity := activeIdentity(t)
		stored, err := domain.NewRefreshToken(identity.ID, time.Hour)
		require.NoError(t, err)

		m.refreshRepo.EXPECT().GetByToken(gomock.Any(), stored.Token).Return(stored, nil)
		m.identityGateway.EXPECT().GetIdentityByID(gomock.Any(), identity.ID).Return(identity, nil)
		m.refreshRepo.EXPECT().Revoke(gomock.Any(), stored.Token).Return(nil)
		expectIssue(m, identity, "fresh-token")

		resp, err := uc.Refresh(context.Background(), &domain.RefreshRequest{RefreshToken: stored.Token})
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", resp.Token)
		assert.NotEqual(t, stored.Token, resp.RefreshToken)
	})

	t.Run("revoked token is refused", func(t *testing.T) {
		uc, m := newAuthUseCaseWithMocks(t)

		identity := activeIdentity(t)
		stored, err := domain.NewRefreshToken(identity.ID, time.Hour)
		require.NoError(t, err)
		stored.Revoke()

		m.refreshRepo.EXPECT().GetByToken(gomock.Any(), stored.Token).Return(stored, nil)

		_, err = uc.Refresh(context.Background(), &domain.RefreshRequest{RefreshToken: stored.Token})
		assert.ErrorIs(t, err, domain.ErrRefreshTokenInvalid)
	})

	t.Run("unknown token is refused", func(t *testing.T) {
		uc, m := newAuthUseCaseWithMocks(t)

		m.refreshRepo.EXPECT().GetByToken(gomock.Any(), "unknown").Return(nil, domain.ErrRefreshTokenInvalid)

		_, err := uc.Refresh(context.Background(), &domain.RefreshRequest{RefreshToken: "unknown"})
		assert.ErrorIs(t, err, domain.ErrRefreshTokenInvalid)
	})
}
