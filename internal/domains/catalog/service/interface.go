package service

import (
	"context"

	authorModel "library-backend/internal/domains/author/model"
	bookModel "library-backend/internal/domains/book/model"
	"library-backend/internal/infrastructure/pubsub"
)

// ServiceInterface - catalog queries and mutations over books and authors
type ServiceInterface interface {
	// ========================================
	// QUERIES
	// ========================================

	BookCount(ctx context.Context) (int, error)
	AuthorCount(ctx context.Context) (int, error)

	// AllBooks returns matching books in creation order, each with its author.
	AllBooks(ctx context.Context, filter bookModel.BookFilter) ([]bookModel.Book, error)

	// AllAuthors returns every author in creation order.
	AllAuthors(ctx context.Context) ([]authorModel.Author, error)

	// AuthorBookCount counts the books linked to an author with the same name.
	AuthorBookCount(ctx context.Context, author *authorModel.Author) (int, error)

	// ========================================
	// MUTATIONS (require an authenticated user)
	// ========================================

	// AddBook runs ResolveOrCreateAuthor then CreateBook and publishes the
	// new book. The returned book's author always has born unset.
	AddBook(ctx context.Context, req bookModel.AddBookRequest) (*bookModel.Book, error)

	// EditAuthor sets born on the author with this name. An unknown name
	// returns nil, nil and creates nothing.
	EditAuthor(ctx context.Context, req authorModel.EditAuthorRequest) (*authorModel.Author, error)

	// ========================================
	// ADD BOOK STEPS
	// ========================================

	// ResolveOrCreateAuthor looks the author up by exact name and creates it
	// when missing. The lookup and the insert are not atomic: a concurrent
	// caller that inserted first makes this fail with authorModel.ErrDuplicateName.
	ResolveOrCreateAuthor(ctx context.Context, name string) (*authorModel.Author, error)

	// CreateBook persists a book linked to author.
	CreateBook(ctx context.Context, req bookModel.AddBookRequest, author *authorModel.Author) (*bookModel.Book, error)
}

// Publisher receives change notifications. *pubsub.Bus satisfies it.
type Publisher interface {
	Publish(topic pubsub.Topic, payload any)
}
