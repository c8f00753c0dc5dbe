package repository

import (
	"context"

	"library-backend/internal/domains/book/model"
)

// RepositoryInterface - Book data access. Books are immutable once created.
type RepositoryInterface interface {
	// Create validates and inserts a book. A book whose AuthorKey does not
	// reference an existing author fails with model.ErrAuthorNotFound.
	Create(ctx context.Context, book *model.Book) (*model.Book, error)

	// Find returns the books matching filter in creation order, each with
	// its Author populated.
	Find(ctx context.Context, filter model.BookFilter) ([]model.Book, error)

	Count(ctx context.Context) (int, error)

	// CountByAuthorName counts books whose linked author has exactly this name.
	CountByAuthorName(ctx context.Context, name string) (int, error)
}
