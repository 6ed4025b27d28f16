package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredential(t *testing.T) {
	identityID := uuid.New()

	tests := []struct {
		name       string
		token      string
		identityID uuid.UUID
		expiresAt  time.Time
		wantErr    bool
	}{
		{
			name:       "valid credential",
			token:      "opaque-token",
			identityID: identityID,
			expiresAt:  time.Now().Add(time.Hour),
			wantErr:    false,
		},
		{
			name:       "empty token",
			token:      "",
			identityID: identityID,
			expiresAt:  time.Now().Add(time.Hour),
			wantErr:    true,
		},
		{
			name:       "nil identity",
			token:      "opaque-token",
			identityID: uuid.Nil,
			expiresAt:  time.Now().Add(time.Hour),
			wantErr:    true,
		},
		{
			name:       "zero expiry",
			token:      "opaque-token",
			identityID: identityID,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, err := NewCredential(tt.token, tt.identityID, tt.expiresAt)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cred)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.token, cred.Token)
			assert.Equal(t, tt.identityID, cred.IdentityID)
			assert.True(t, cred.IsValid())
		})
	}
}

func TestCredential_Expiry(t *testing.T) {
	identityID := uuid.New()

	expired, err := NewCredential("tok", identityID, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, expired.IsExpired())
	assert.False(t, expired.IsValid(), "expired credential must be treated as absent")
	assert.Equal(t, time.Duration(0), expired.RemainingLifetime())

	live, err := NewCredential("tok", identityID, time.Now().Add(10*time.Minute))
	require.NoError(t, err)
	assert.False(t, live.IsExpired())
	assert.True(t, live.IsValid())
	assert.True(t, live.ExpiringSoon(15*time.Minute))
	assert.False(t, live.ExpiringSoon(time.Minute))
}

func TestCredential_NilReceiverIsInvalid(t *testing.T) {
	var cred *Credential
	assert.False(t, cred.IsValid())
}

func TestDeriveSession(t *testing.T) {
	identityID := uuid.New()
	tenantID := uuid.New()

	identity := &Identity{ID: identityID, Email: "demo@vyomtech.com", Name: "Demo"}

	t.Run("valid credential yields authenticated session", func(t *testing.T) {
		cred, err := NewCredential("tok", identityID, time.Now().Add(time.Hour))
		require.NoError(t, err)

		s := DeriveSession(cred, identity, tenantID)
		assert.True(t, s.Authenticated)
		assert.Equal(t, identityID, s.IdentityID)
		assert.Equal(t, tenantID, s.TenantID)
		assert.Equal(t, "demo@vyomtech.com", s.Email)
	})

	t.Run("expired credential yields anonymous session", func(t *testing.T) {
		cred, err := NewCredential("tok", identityID, time.Now().Add(-time.Hour))
		require.NoError(t, err)

		s := DeriveSession(cred, identity, tenantID)
		assert.False(t, s.Authenticated)
		assert.Equal(t, uuid.Nil, s.IdentityID)
	})

	t.Run("absent credential yields anonymous session", func(t *testing.T) {
		s := DeriveSession(nil, nil, tenantID)
		assert.Equal(t, Anonymous(), s)
	})
}
