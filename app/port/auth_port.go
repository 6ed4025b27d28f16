package port

//go:generate mockgen -source=auth_port.go -destination=../mocks/mock_auth_port.go

import (
	"context"
	"time"

	"github.com/google/uuid"

	"session-service/app/domain"
)

// AuthUsecase defines authentication business logic interface
type AuthUsecase interface {
	// Credential lifecycle
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.LoginResponse, error)
	Refresh(ctx context.Context, req *domain.RefreshRequest) (*domain.LoginResponse, error)
	Verify(ctx context.Context, tokenString string) (*domain.VerifyResponse, error)
	Logout(ctx context.Context, tokenString string) error

	// OAuth callback handling
	CompleteProviderLogin(ctx context.Context, provider, code string) (*domain.LoginResponse, error)
}

// TokenIssuer mints and verifies credential tokens.
type TokenIssuer interface {
	Issue(identity *domain.Identity) (string, time.Time, error)
	Verify(tokenString string) (*domain.TokenClaims, error)
}

// ProviderGateway performs the code exchange with external identity
// providers and returns normalized profiles.
type ProviderGateway interface {
	AuthCodeURL(provider, state string) (string, error)
	Exchange(ctx context.Context, provider, code string) (*domain.ProviderProfile, error)
}

// SessionRecordStore holds the server-side records for issued
// credentials. Deleting a record revokes the credential.
type SessionRecordStore interface {
	Create(ctx context.Context, rec domain.SessionRecord) error
	Get(ctx context.Context, token string) (*domain.SessionRecord, error)
	SetTenant(ctx context.Context, token string, tenantID uuid.UUID) error
	Delete(ctx context.Context, token string) error
}

// RefreshTokenRepositoryPort defines refresh token data access interface
type RefreshTokenRepositoryPort interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForIdentity(ctx context.Context, identityID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int, error)
}
