package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/shared/identity"
)

func TestUserFromContext(t *testing.T) {
	assert.Nil(t, identity.UserFromContext(context.Background()))
	assert.Nil(t, identity.UserFromContext(identity.WithUser(context.Background(), nil)))

	u := &model.User{Key: 1, Username: "mluukkai"}
	assert.Same(t, u, identity.UserFromContext(identity.WithUser(context.Background(), u)))
}
