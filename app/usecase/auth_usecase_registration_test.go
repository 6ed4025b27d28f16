package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"session-service/app/domain"
)

func TestAuthUseCase_Register(t *testing.T) {
	req := &domain.RegisterRequest{
		Email:    "new@vyomtech.com",
		Name:     "New User",
		Password: "str0ng-passw0rd",
	}

	t.Run("creates identity and issues a credential", func(t *testing.T) {
		uc, m := newAuthUseCaseWithMocks(t)

		m.identityGateway.EXPECT().GetIdentityByEmail(gomock.Any(), "new@vyomtech.com").
			Return(nil, domain.ErrIdentityNotFound)
		m.identityGateway.EXPECT().HashPassword("str0ng-passw0rd").Return("$2a$10$newhash", nil)
		m.identityGateway.EXPECT().CreateIdentity(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, identity *domain.Identity) error {
				assert.Equal(t, "new@vyomtech.com", identity.Email)
				assert.Equal(t, "$2a$10$newhash", identity.PasswordHash)
				return nil
			})
		m.tokenIssuer.EXPECT().Issue(gomock.Any()).Return("fresh-token", time.Now().Add(time.Hour), nil)
		m.records.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.refreshRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := uc.Register(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", resp.Token)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "new@vyomtech.com", resp.User.Email)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		uc, m := newAuthUseCaseWithMocks(t)

		m.identityGateway.EXPECT().GetIdentityByEmail(gomock.Any(), "new@vyomtech.com").
			Return(activeIdentity(t), nil)

		resp, err := uc.Register(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrIdentityExists)
		assert.Nil(t, resp)
	})

	t.Run("repository failure surfaces", func(t *testing.T) {
		uc, m := newAuthUseCaseWithMocks(t)

		m.identityGateway.EXPECT().GetIdentityByEmail(gomock.Any(), "new@vyomtech.com").
			Return(nil, domain.ErrIdentityNotFound)
		m.identityGateway.EXPECT().HashPassword("str0ng-passw0rd").Return("$2a$10$newhash", nil)
		m.identityGateway.EXPECT().CreateIdentity(gomock.Any(), gomock.Any()).
			Return(assert.AnError)

		resp, err := uc.Register(context.Background(), req)
		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}
