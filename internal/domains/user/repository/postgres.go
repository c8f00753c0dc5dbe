package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/infrastructure/database"
)

// postgresRepository is the concrete pgx implementation; callers only see the interface.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a user repository on pgxpool
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const selectUserColumns = `id, username, password_hash, favorite_genre, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.Key, &u.Username, &u.PasswordHash, &u.FavoriteGenre, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (username, password_hash, favorite_genre)
		VALUES ($1, $2, $3)
		RETURNING ` + selectUserColumns

	created, err := scanUser(r.pool.QueryRow(ctx, query, u.Username, u.PasswordHash, u.FavoriteGenre))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, model.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, key int64) (*model.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE username = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}
