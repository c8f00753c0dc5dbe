package service

import (
	"context"
	"errors"
	"fmt"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/repository"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/identifier"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"
)

type identityResolver struct {
	repo repository.RepositoryInterface
	jwt  *jwt.Manager
}

// NewIdentityResolver creates the bearer token resolver.
func NewIdentityResolver(repo repository.RepositoryInterface, jwtManager *jwt.Manager) IdentityResolverInterface {
	return &identityResolver{repo: repo, jwt: jwtManager}
}

func (r *identityResolver) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := r.jwt.ValidateToken(token)
	if err != nil {
		return nil, apperror.Authentication("invalid token")
	}

	key, err := identifier.Decode(claims.ID)
	if err != nil {
		logger.Debug("token carries a malformed user id " + claims.ID)
		return nil, nil
	}

	u, err := r.repo.GetByID(ctx, key)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	return u, nil
}
