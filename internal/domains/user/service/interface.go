package service

import (
	"context"

	"library-backend/internal/domains/user/model"
)

// ServiceInterface - account operations of the catalog API
type ServiceInterface interface {
	// AddUser creates an account. Anyone may call it.
	AddUser(ctx context.Context, req model.AddUserRequest) (*model.User, error)

	// Login exchanges credentials for a signed token.
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)

	// Me returns the user attached to ctx, or nil when anonymous.
	Me(ctx context.Context) *model.User
}

// IdentityResolverInterface maps a bearer token to a user.
type IdentityResolverInterface interface {
	// Authenticate returns nil, nil for an empty token or a token whose user
	// is gone, and an authentication error for a token that fails verification.
	Authenticate(ctx context.Context, token string) (*model.User, error)
}
