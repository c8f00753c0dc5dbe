package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/identifier"
	"library-backend/pkg/jwt"
)

func TestAuthenticateResolvesUser(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	u, err := f.svc.AddUser(ctx, model.AddUserRequest{Username: "mluukkai", FavoriteGenre: "refactoring"})
	require.NoError(t, err)
	res, err := f.svc.Login(ctx, model.LoginRequest{Username: "mluukkai", Password: "1234"})
	require.NoError(t, err)

	got, err := f.resolver.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.Key, got.Key)
}

func TestAuthenticateEmptyTokenIsAnonymous(t *testing.T) {
	f := setup(t)

	got, err := f.resolver.Authenticate(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestAuthenticateRejectsBadSignature(t *testing.T) {
	f := setup(t)

	token, err := jwt.NewManager("someone-else", 0).IssueToken("mluukkai", "", identifier.Encode(1))
	require.NoError(t, err)

	got, err := f.resolver.Authenticate(context.Background(), token)
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, apperror.IsAuthentication(err))

	_, err = f.resolver.Authenticate(context.Background(), "garbage")
	assert.True(t, apperror.IsAuthentication(err))
}

func TestAuthenticateUnknownUserIsAnonymous(t *testing.T) {
	f := setup(t)

	for _, id := range []string{identifier.Encode(42), "not-an-id"} {
		token, err := f.jwt.IssueToken("ghost", "", id)
		require.NoError(t, err)

		got, err := f.resolver.Authenticate(context.Background(), token)
		assert.NoError(t, err)
		assert.Nil(t, got)
	}
}
