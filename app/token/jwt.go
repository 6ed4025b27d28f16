// Package token mints and verifies the opaque-to-clients credential
// tokens issued by the auth endpoints.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"session-service/app/domain"
)

// Config holds token generation configuration.
type Config struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// sessionClaims are the claims carried by a credential token.
type sessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Issuer generates and verifies signed credential tokens.
type Issuer struct {
	cfg Config
}

// NewIssuer creates a token issuer.
func NewIssuer(cfg Config) *Issuer {
	return &Issuer{cfg: cfg}
}

// Issue mints a credential for the identity. The expiry instant is
// returned alongside the token so the client can check expiry lazily at
// dispatch without decoding the token.
func (i *Issuer) Issue(identity *domain.Identity) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(i.cfg.TTL)

	claims := sessionClaims{
		Email: identity.Email,
		Name:  identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			Subject:   identity.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a credential token, including expiry,
// issuer and audience.
func (i *Issuer) Verify(tokenString string) (*domain.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(i.cfg.Secret), nil
	},
		jwt.WithIssuer(i.cfg.Issuer),
		jwt.WithAudience(i.cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	identityID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", domain.ErrTokenInvalid)
	}

	return &domain.TokenClaims{
		IdentityID: identityID,
		Email:      claims.Email,
		Name:       claims.Name,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}
