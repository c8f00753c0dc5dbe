package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	authorModel "library-backend/internal/domains/author/model"
	"library-backend/internal/domains/book/model"
	"library-backend/internal/infrastructure/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a book repository on pgxpool
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	query := `
        INSERT INTO books (title, published, genres, author_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `

	created := *b
	created.Genres = append([]string{}, b.Genres...)
	err := r.pool.QueryRow(ctx, query, b.Title, b.Published, b.Genres, b.AuthorKey).
		Scan(&created.Key, &created.CreatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) Find(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	// NULL parameters disable the corresponding filter
	query := `
        SELECT b.id, b.title, b.published, b.genres, b.author_id, b.created_at,
               a.id, a.name, a.born, a.created_at, a.updated_at
        FROM books b
        JOIN authors a ON a.id = b.author_id
        WHERE ($1::text IS NULL OR $1 = ANY(b.genres))
          AND ($2::text IS NULL OR a.name = $2)
        ORDER BY b.id ASC
    `

	rows, err := r.pool.Query(ctx, query, filter.Genre, filter.AuthorName)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBookWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, nil
}

func scanBookWithAuthor(row pgx.Row) (*model.Book, error) {
	var b model.Book
	var a authorModel.Author
	err := row.Scan(
		&b.Key, &b.Title, &b.Published, &b.Genres, &b.AuthorKey, &b.CreatedAt,
		&a.Key, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Author = &a
	return &b, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) CountByAuthorName(ctx context.Context, name string) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM books b
        JOIN authors a ON a.id = b.author_id
        WHERE a.name = $1
    `

	var count int
	if err := r.pool.QueryRow(ctx, query, name).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count books by author: %w", err)
	}
	return count, nil
}
