package repository

import (
	"context"

	"library-backend/internal/domains/author/model"
)

// RepositoryInterface defines Author data access.
//
// Absence is reported with model.ErrAuthorNotFound. Create and Update run
// model validation first and return its error unchanged; a name that is
// already taken yields model.ErrDuplicateName.
type RepositoryInterface interface {
	// Create inserts a new author and returns it with key and timestamps.
	Create(ctx context.Context, author *model.Author) (*model.Author, error)

	// Update persists name and born of an existing author.
	Update(ctx context.Context, author *model.Author) (*model.Author, error)

	GetByID(ctx context.Context, key int64) (*model.Author, error)

	// GetByName is an exact, case-sensitive match.
	GetByName(ctx context.Context, name string) (*model.Author, error)

	// GetAll returns every author in creation order.
	GetAll(ctx context.Context) ([]model.Author, error)

	Count(ctx context.Context) (int, error)
}
