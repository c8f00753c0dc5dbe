package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/infrastructure/database"
)

// AuthorRow is the bun model of the authors table.
type AuthorRow struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,notnull,unique"`
	Born      *int32    `bun:"born"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// ToModel converts the row into the domain model.
func (r *AuthorRow) ToModel() *model.Author {
	return &model.Author{
		Key:       r.ID,
		Name:      r.Name,
		Born:      r.Born,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// SQLiteTables lists the tables this repository needs.
func SQLiteTables() []database.TableModel {
	return []database.TableModel{{Model: (*AuthorRow)(nil)}}
}

type sqliteRepository struct {
	db *bun.DB
}

// NewSQLiteRepository creates an author repository backed by bun/sqlite
func NewSQLiteRepository(db *bun.DB) RepositoryInterface {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := &AuthorRow{
		Name:      a.Name,
		Born:      a.Born,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.db.NewInsert().Model(row).Returning("id").Exec(ctx); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, model.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return row.ToModel(), nil
}

func (r *sqliteRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	res, err := r.db.NewUpdate().
		Model((*AuthorRow)(nil)).
		Set("name = ?", a.Name).
		Set("born = ?", a.Born).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", a.Key).
		Exec(ctx)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, model.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, model.ErrAuthorNotFound
	}

	return r.GetByID(ctx, a.Key)
}

func (r *sqliteRepository) GetByID(ctx context.Context, key int64) (*model.Author, error) {
	return r.getOne(ctx, "id = ?", key)
}

func (r *sqliteRepository) GetByName(ctx context.Context, name string) (*model.Author, error) {
	return r.getOne(ctx, "name = ?", name)
}

func (r *sqliteRepository) getOne(ctx context.Context, where string, arg any) (*model.Author, error) {
	row := new(AuthorRow)
	err := r.db.NewSelect().Model(row).Where(where, arg).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	return row.ToModel(), nil
}

func (r *sqliteRepository) GetAll(ctx context.Context) ([]model.Author, error) {
	var rows []AuthorRow
	if err := r.db.NewSelect().Model(&rows).OrderExpr("a.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}

	authors := make([]model.Author, 0, len(rows))
	for i := range rows {
		authors = append(authors, *rows[i].ToModel())
	}
	return authors, nil
}

func (r *sqliteRepository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().Model((*AuthorRow)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return count, nil
}
