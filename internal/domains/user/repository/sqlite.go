package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/infrastructure/database"
)

// UserRow is the bun model of the users table.
type UserRow struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID            int64     `bun:"id,pk,autoincrement"`
	Username      string    `bun:"username,notnull,unique"`
	PasswordHash  string    `bun:"password_hash,notnull"`
	FavoriteGenre *string   `bun:"favorite_genre"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
}

func (r *UserRow) toModel() *model.User {
	return &model.User{
		Key:           r.ID,
		Username:      r.Username,
		PasswordHash:  r.PasswordHash,
		FavoriteGenre: r.FavoriteGenre,
		CreatedAt:     r.CreatedAt,
	}
}

// SQLiteTables lists the tables this repository needs.
func SQLiteTables() []database.TableModel {
	return []database.TableModel{{Model: (*UserRow)(nil)}}
}

type sqliteRepository struct {
	db *bun.DB
}

// NewSQLiteRepository creates a user repository backed by bun/sqlite
func NewSQLiteRepository(db *bun.DB) RepositoryInterface {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	row := &UserRow{
		Username:      u.Username,
		PasswordHash:  u.PasswordHash,
		FavoriteGenre: u.FavoriteGenre,
		CreatedAt:     time.Now().UTC(),
	}

	if _, err := r.db.NewInsert().Model(row).Returning("id").Exec(ctx); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, model.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return row.toModel(), nil
}

func (r *sqliteRepository) GetByID(ctx context.Context, key int64) (*model.User, error) {
	return r.getOne(ctx, "id = ?", key)
}

func (r *sqliteRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, "username = ?", username)
}

func (r *sqliteRepository) getOne(ctx context.Context, where string, arg any) (*model.User, error) {
	row := new(UserRow)
	if err := r.db.NewSelect().Model(row).Where(where, arg).Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return row.toModel(), nil
}
