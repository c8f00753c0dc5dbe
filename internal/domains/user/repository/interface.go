package repository

import (
	"context"

	"library-backend/internal/domains/user/model"
)

// RepositoryInterface - User data access.
// Absence is model.ErrUserNotFound; a taken username is model.ErrDuplicateUsername.
type RepositoryInterface interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, key int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}
