package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/infrastructure/database"
)

// postgresRepository implements RepositoryInterface on pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new author repository instance
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

const selectAuthorColumns = `id, name, born, created_at, updated_at`

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var a model.Author
	if err := row.Scan(&a.Key, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	query := `
        INSERT INTO authors (name, born)
        VALUES ($1, $2)
        RETURNING ` + selectAuthorColumns

	created, err := scanAuthor(r.pool.QueryRow(ctx, query, a.Name, a.Born))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, model.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	query := `
        UPDATE authors
        SET name = $2, born = $3, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + selectAuthorColumns

	updated, err := scanAuthor(r.pool.QueryRow(ctx, query, a.Key, a.Name, a.Born))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		if database.IsUniqueViolation(err) {
			return nil, model.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	return updated, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, key int64) (*model.Author, error) {
	query := `SELECT ` + selectAuthorColumns + ` FROM authors WHERE id = $1`

	a, err := scanAuthor(r.pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}
	return a, nil
}

func (r *postgresRepository) GetByName(ctx context.Context, name string) (*model.Author, error) {
	query := `SELECT ` + selectAuthorColumns + ` FROM authors WHERE name = $1`

	a, err := scanAuthor(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by name: %w", err)
	}
	return a, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]model.Author, error) {
	query := `SELECT ` + selectAuthorColumns + ` FROM authors ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return count, nil
}
