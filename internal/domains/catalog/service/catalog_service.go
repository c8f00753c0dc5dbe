package service

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	authorModel "library-backend/internal/domains/author/model"
	authorRepo "library-backend/internal/domains/author/repository"
	bookModel "library-backend/internal/domains/book/model"
	bookRepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/infrastructure/pubsub"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/identity"
	"library-backend/pkg/logger"
)

// catalogService implements ServiceInterface
type catalogService struct {
	authors   authorRepo.RepositoryInterface
	books     bookRepo.RepositoryInterface
	publisher Publisher
}

// NewCatalogService creates the catalog service
func NewCatalogService(authors authorRepo.RepositoryInterface, books bookRepo.RepositoryInterface, publisher Publisher) ServiceInterface {
	return &catalogService{
		authors:   authors,
		books:     books,
		publisher: publisher,
	}
}

// ========================================
// QUERIES
// ========================================

func (s *catalogService) BookCount(ctx context.Context) (int, error) {
	n, err := s.books.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}

func (s *catalogService) AuthorCount(ctx context.Context) (int, error) {
	n, err := s.authors.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count authors: %w", err)
	}
	return n, nil
}

func (s *catalogService) AllBooks(ctx context.Context, filter bookModel.BookFilter) ([]bookModel.Book, error) {
	books, err := s.books.Find(ctx, filter.Normalize())
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	return books, nil
}

func (s *catalogService) AllAuthors(ctx context.Context) ([]authorModel.Author, error) {
	authors, err := s.authors.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

func (s *catalogService) AuthorBookCount(ctx context.Context, author *authorModel.Author) (int, error) {
	n, err := s.books.CountByAuthorName(ctx, author.Name)
	if err != nil {
		return 0, fmt.Errorf("count books of %q: %w", author.Name, err)
	}
	return n, nil
}

// ========================================
// MUTATIONS
// ========================================

func (s *catalogService) AddBook(ctx context.Context, req bookModel.AddBookRequest) (*bookModel.Book, error) {
	if err := requireUser(ctx); err != nil {
		return nil, err
	}

	// 1. Resolve the author, creating it on first use
	author, err := s.ResolveOrCreateAuthor(ctx, req.AuthorName)
	if err != nil {
		return nil, classify(err, req.Args())
	}

	// 2. Persist the book against the resolved author
	book, err := s.CreateBook(ctx, req, author)
	if err != nil {
		return nil, classify(err, req.Args())
	}

	// 3. Notify subscribers. The author is echoed without born.
	book.Author = author.WithoutBorn()
	s.publisher.Publish(pubsub.TopicBookAdded, book)

	logger.Info("book added", map[string]interface{}{
		"book_id": book.ID(),
		"title":   book.Title,
		"author":  author.Name,
	})

	return book, nil
}

func (s *catalogService) EditAuthor(ctx context.Context, req authorModel.EditAuthorRequest) (*authorModel.Author, error) {
	if err := requireUser(ctx); err != nil {
		return nil, err
	}

	author, err := s.authors.GetByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, authorModel.ErrAuthorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find author: %w", err)
	}

	author.Born = req.SetBornTo
	updated, err := s.authors.Update(ctx, author)
	if err != nil {
		return nil, classify(err, req.Args())
	}

	s.publisher.Publish(pubsub.TopicAuthorUpdated, updated)

	logger.Info("author updated", map[string]interface{}{
		"author_id": updated.ID(),
		"name":      updated.Name,
	})
	return updated, nil
}

// ========================================
// ADD BOOK STEPS
// ========================================

func (s *catalogService) ResolveOrCreateAuthor(ctx context.Context, name string) (*authorModel.Author, error) {
	author, err := s.authors.GetByName(ctx, name)
	if err == nil {
		return author, nil
	}
	if !errors.Is(err, authorModel.ErrAuthorNotFound) {
		return nil, fmt.Errorf("find author: %w", err)
	}

	created, err := s.authors.Create(ctx, &authorModel.Author{Name: name})
	if err != nil {
		return nil, err
	}

	logger.Info("author created", map[string]interface{}{
		"author_id": created.ID(),
		"name":      created.Name,
	})
	return created, nil
}

func (s *catalogService) CreateBook(ctx context.Context, req bookModel.AddBookRequest, author *authorModel.Author) (*bookModel.Book, error) {
	genres := req.Genres
	if genres == nil {
		genres = []string{}
	}

	book, err := s.books.Create(ctx, &bookModel.Book{
		Title:     req.Title,
		Published: req.Published,
		Genres:    genres,
		AuthorKey: author.Key,
	})
	if err != nil {
		return nil, err
	}

	book.Author = author
	return book, nil
}

// ========================================
// HELPERS
// ========================================

func requireUser(ctx context.Context) error {
	if identity.UserFromContext(ctx) == nil {
		return apperror.Authentication("not authenticated")
	}
	return nil
}

// classify turns record constraint failures into validation errors carrying
// the mutation arguments. Anything else is an internal failure.
func classify(err error, args map[string]any) error {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs),
		errors.Is(err, authorModel.ErrDuplicateName),
		errors.Is(err, bookModel.ErrAuthorNotFound):
		return apperror.Validation(err, args)
	default:
		return err
	}
}
