package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"session-service/app/domain"
	"session-service/app/port"
)

// AuthUseCase implements the credential lifecycle business logic
type AuthUseCase struct {
	identityGateway port.IdentityGateway
	providerGateway port.ProviderGateway
	tokenIssuer     port.TokenIssuer
	records         port.SessionRecordStore
	refreshRepo     port.RefreshTokenRepositoryPort
	refreshTTL      time.Duration
	logger          *slog.Logger
}

// NewAuthUseCase creates a new AuthUseCase instance
func NewAuthUseCase(
	identityGateway port.IdentityGateway,
	providerGateway port.ProviderGateway,
	tokenIssuer port.TokenIssuer,
	records port.SessionRecordStore,
	refreshRepo port.RefreshTokenRepositoryPort,
	refreshTTL time.Duration,
	logger *slog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		identityGateway: identityGateway,
		providerGateway: providerGateway,
		tokenIssuer:     tokenIssuer,
		records:         records,
		refreshRepo:     refreshRepo,
		refreshTTL:      refreshTTL,
		logger:          logger.With("component", "auth_usecase"),
	}
}

// Login authenticates an identity by email and password and issues a
// credential. Unknown email and wrong password are indistinguishable to
// the caller.
func (uc *AuthUseCase) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	identity, err := uc.identityGateway.GetIdentityByEmail(ctx, req.Email)
	if err != nil {
		uc.logger.Warn("login attempt for unknown email", "email", req.Email)
		return nil, domain.ErrInvalidCredentials
	}

	if !identity.IsActive() {
		uc.logger.Warn("login attempt for inactive identity", "identity_id", identity.ID)
		return nil, domain.ErrInvalidCredentials
	}

	if err := uc.identityGateway.VerifyPassword(identity.PasswordHash, req.Password); err != nil {
		uc.logger.Warn("login attempt with wrong password", "identity_id", identity.ID)
		return nil, domain.ErrInvalidCredentials
	}

	response, err := uc.issueCredential(ctx, identity)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("login succeeded", "identity_id", identity.ID)
	return response, nil
}

// Register creates a password identity and immediately issues a
// credential, so registration doubles as the first login.
func (uc *AuthUseCase) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.LoginResponse, error) {
	if existing, err := uc.identityGateway.GetIdentityByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, domain.ErrIdentityExists
	}

	identity, err := domain.NewIdentity(req.Email, req.Name)
	if err != nil {
		return nil, fmt.Errorf("invalid registration: %w", err)
	}

	hash, err := uc.identityGateway.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	identity.PasswordHash = hash

	if err := uc.identityGateway.CreateIdentity(ctx, identity); err != nil {
		return nil, err
	}

	response, err := uc.issueCredential(ctx, identity)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("identity registered", "identity_id", identity.ID, "email", identity.Email)
	return response, nil
}

// Refresh exchanges a live refresh token for a fresh credential. The
// presented refresh token is revoked and replaced; replaying it fails.
func (uc *AuthUseCase) Refresh(ctx context.Context, req *domain.RefreshRequest) (*domain.LoginResponse, error) {
	stored, err := uc.refreshRepo.GetByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, domain.ErrRefreshTokenInvalid
	}
	if !stored.IsValid() {
		uc.logger.Warn("refresh with revoked or expired token", "identity_id", stored.IdentityID)
		return nil, domain.ErrRefreshTokenInvalid
	}

	identity, err := uc.identityGateway.GetIdentityByID(ctx, stored.IdentityID)
	if err != nil {
		return nil, domain.ErrRefreshTokenInvalid
	}
	if !identity.IsActive() {
		return nil, domain.ErrRefreshTokenInvalid
	}

	if err := uc.refreshRepo.Revoke(ctx, stored.Token); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	response, err := uc.issueCredential(ctx, identity)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("credential refreshed", "identity_id", identity.ID)
	return response, nil
}

// Verify reports whether a credential token is still live. Expired,
// malformed and revoked tokens all yield a negative result rather than
// an error; transport-level failures are the only errors.
func (uc *AuthUseCase) Verify(ctx context.Context, tokenString string) (*domain.VerifyResponse, error) {
	claims, err := uc.tokenIssuer.Verify(tokenString)
	if err != nil {
		return &domain.VerifyResponse{Valid: false}, nil
	}

	record, err := uc.records.Get(ctx, tokenString)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			// token signature is fine but the record is gone: revoked
			return &domain.VerifyResponse{Valid: false}, nil
		}
		return nil, fmt.Errorf("failed to check session record: %w", err)
	}

	return &domain.VerifyResponse{
		Valid: true,
		User: &domain.IdentitySummary{
			ID:       claims.IdentityID,
			Email:    claims.Email,
			Name:     claims.Name,
			TenantID: record.TenantID,
		},
	}, nil
}

// Logout revokes the credential's session record. Logout never fails
// from the caller's point of view: revoking an unknown, expired or
// already-revoked token is a success.
func (uc *AuthUseCase) Logout(ctx context.Context, tokenString string) error {
	if err := uc.records.Delete(ctx, tokenString); err != nil {
		// log and swallow; the client is clearing local state regardless
		uc.logger.Error("failed to delete session record on logout", "error", err)
	}

	uc.logger.Info("logout processed")
	return nil
}

// CompleteProviderLogin finishes an OAuth authorization code flow. The
// exchange is fail-closed: any provider error yields no session at all.
func (uc *AuthUseCase) CompleteProviderLogin(ctx context.Context, provider, code string) (*domain.LoginResponse, error) {
	profile, err := uc.providerGateway.Exchange(ctx, provider, code)
	if err != nil {
		return nil, err
	}

	identity, err := uc.resolveProviderIdentity(ctx, profile)
	if err != nil {
		return nil, err
	}
	if !identity.IsActive() {
		return nil, domain.ErrIdentitySuspended
	}

	response, err := uc.issueCredential(ctx, identity)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("provider login completed",
		"provider", provider,
		"identity_id", identity.ID)
	return response, nil
}

// resolveProviderIdentity finds the identity for a provider profile,
// linking by email when the provider link does not exist yet and
// creating a new identity when neither matches.
func (uc *AuthUseCase) resolveProviderIdentity(ctx context.Context, profile *domain.ProviderProfile) (*domain.Identity, error) {
	identity, err := uc.identityGateway.GetIdentityByProvider(ctx, profile.Provider, profile.ProviderUserID)
	if err == nil {
		return identity, nil
	}
	if !errors.Is(err, domain.ErrIdentityNotFound) {
		return nil, err
	}

	existing, err := uc.identityGateway.GetIdentityByEmail(ctx, profile.Email)
	if err == nil {
		existing.Provider = profile.Provider
		existing.ProviderUserID = profile.ProviderUserID
		existing.UpdatedAt = time.Now()
		if err := uc.identityGateway.UpdateIdentity(ctx, existing); err != nil {
			return nil, err
		}
		uc.logger.Info("linked provider to existing identity",
			"identity_id", existing.ID,
			"provider", profile.Provider)
		return existing, nil
	}
	if !errors.Is(err, domain.ErrIdentityNotFound) {
		return nil, err
	}

	identity, err = domain.NewProviderIdentity(profile.Provider, profile.ProviderUserID, profile.Email, profile.Name)
	if err != nil {
		return nil, err
	}
	if err := uc.identityGateway.CreateIdentity(ctx, identity); err != nil {
		return nil, err
	}

	uc.logger.Info("created identity from provider profile",
		"identity_id", identity.ID,
		"provider", profile.Provider)
	return identity, nil
}

// issueCredential mints a credential token, records the server-side
// session, and mints a fresh refresh token.
func (uc *AuthUseCase) issueCredential(ctx context.Context, identity *domain.Identity) (*domain.LoginResponse, error) {
	tokenString, expiresAt, err := uc.tokenIssuer.Issue(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to issue credential: %w", err)
	}

	record := domain.SessionRecord{
		Token:      tokenString,
		IdentityID: identity.ID,
		ExpiresAt:  expiresAt,
	}
	if err := uc.records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create session record: %w", err)
	}

	refreshToken, err := domain.NewRefreshToken(identity.ID, uc.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to mint refresh token: %w", err)
	}
	if err := uc.refreshRepo.Create(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &domain.LoginResponse{
		Token:        tokenString,
		RefreshToken: refreshToken.Token,
		ExpiresAt:    expiresAt,
		User: domain.IdentitySummary{
			ID:    identity.ID,
			Email: identity.Email,
			Name:  identity.Name,
		},
	}, nil
}
