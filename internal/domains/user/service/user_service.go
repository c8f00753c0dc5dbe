package service

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/repository"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/identity"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"
)

// DefaultPassword is the password every account is created with.
const DefaultPassword = "1234"

// userService implements ServiceInterface
type userService struct {
	repo       repository.RepositoryInterface
	jwt        *jwt.Manager
	bcryptCost int
}

// NewUserService creates the account service.
// bcryptCost below bcrypt.MinCost falls back to bcrypt.DefaultCost.
func NewUserService(repo repository.RepositoryInterface, jwtManager *jwt.Manager, bcryptCost int) ServiceInterface {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		repo:       repo,
		jwt:        jwtManager,
		bcryptCost: bcryptCost,
	}
}

// ========================================
// ACCOUNTS
// ========================================

func (s *userService) AddUser(ctx context.Context, req model.AddUserRequest) (*model.User, error) {
	args := map[string]any{
		"username":      req.Username,
		"favoriteGenre": req.FavoriteGenre,
	}

	if err := model.ValidatePassword(DefaultPassword); err != nil {
		return nil, apperror.Validation(err, args)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	genre := req.FavoriteGenre
	u := &model.User{
		Username:      req.Username,
		PasswordHash:  string(hash),
		FavoriteGenre: &genre,
	}

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		if isConstraintError(err) {
			return nil, apperror.Validation(err, args)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info("user created", map[string]interface{}{
		"user_id":  created.ID(),
		"username": created.Username,
	})
	return created, nil
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	u, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, wrongCredentials()
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if req.Password != DefaultPassword {
		return nil, wrongCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, wrongCredentials()
	}

	token, err := s.jwt.IssueToken(u.Username, u.GenreOrEmpty(), u.ID())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &model.LoginResponse{Token: token, User: u}, nil
}

func (s *userService) Me(ctx context.Context) *model.User {
	return identity.UserFromContext(ctx)
}

// ========================================
// HELPERS
// ========================================

func wrongCredentials() error {
	return apperror.UserInput(model.ErrInvalidCredentials.Error(), nil)
}

func isConstraintError(err error) bool {
	var verrs validation.Errors
	return errors.As(err, &verrs) || errors.Is(err, model.ErrDuplicateUsername)
}
