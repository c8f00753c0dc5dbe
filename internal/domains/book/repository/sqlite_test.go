package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorModel "library-backend/internal/domains/author/model"
	authorRepo "library-backend/internal/domains/author/repository"
	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	"library-backend/internal/infrastructure/database"
)

type fixture struct {
	authors authorRepo.RepositoryInterface
	books   repository.RepositoryInterface
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, &database.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tables := append(authorRepo.SQLiteTables(), repository.SQLiteTables()...)
	require.NoError(t, db.CreateTables(ctx, tables...))

	return &fixture{
		authors: authorRepo.NewSQLiteRepository(db.DB),
		books:   repository.NewSQLiteRepository(db.DB),
	}
}

func (f *fixture) author(t *testing.T, name string) *authorModel.Author {
	t.Helper()
	a, err := f.authors.Create(context.Background(), &authorModel.Author{Name: name})
	require.NoError(t, err)
	return a
}

func (f *fixture) book(t *testing.T, title string, a *authorModel.Author, genres ...string) *model.Book {
	t.Helper()
	if genres == nil {
		genres = []string{}
	}
	b, err := f.books.Create(context.Background(), &model.Book{
		Title:     title,
		Published: 2000,
		Genres:    genres,
		AuthorKey: a.Key,
	})
	require.NoError(t, err)
	return b
}

func strPtr(s string) *string { return &s }

func titles(books []model.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func TestCreateBook(t *testing.T) {
	f := setup(t)
	martin := f.author(t, "Robert Martin")

	b := f.book(t, "Clean Code", martin, "refactoring")

	assert.NotZero(t, b.Key)
	assert.Equal(t, martin.Key, b.AuthorKey)
	assert.Equal(t, []string{"refactoring"}, b.Genres)
}

func TestCreateBookRequiresExistingAuthor(t *testing.T) {
	f := setup(t)

	_, err := f.books.Create(context.Background(), &model.Book{
		Title:     "Orphan",
		Published: 2001,
		Genres:    []string{},
		AuthorKey: 4242,
	})
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestCreateBookValidates(t *testing.T) {
	f := setup(t)
	martin := f.author(t, "Robert Martin")

	_, err := f.books.Create(context.Background(), &model.Book{Title: "", Published: 2001, Genres: []string{}, AuthorKey: martin.Key})
	assert.Error(t, err)

	count, err := f.books.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFindFilters(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	martin := f.author(t, "Robert Martin")
	fowler := f.author(t, "Martin Fowler")

	f.book(t, "Clean Code", martin, "refactoring")
	f.book(t, "Agile software development", martin, "agile", "patterns", "design")
	f.book(t, "Refactoring, edition 2", fowler, "refactoring")
	f.book(t, "Refactoring to patterns", fowler, "refactoring", "patterns")

	all, err := f.books.Find(ctx, model.BookFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Clean Code",
		"Agile software development",
		"Refactoring, edition 2",
		"Refactoring to patterns",
	}, titles(all))
	for _, b := range all {
		require.NotNil(t, b.Author)
		assert.Equal(t, b.AuthorKey, b.Author.Key)
	}

	byGenre, err := f.books.Find(ctx, model.BookFilter{Genre: strPtr("patterns")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Agile software development", "Refactoring to patterns"}, titles(byGenre))

	caseSensitive, err := f.books.Find(ctx, model.BookFilter{Genre: strPtr("Patterns")})
	require.NoError(t, err)
	assert.Empty(t, caseSensitive)

	byAuthor, err := f.books.Find(ctx, model.BookFilter{AuthorName: strPtr("Martin Fowler")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Refactoring, edition 2", "Refactoring to patterns"}, titles(byAuthor))
	assert.Equal(t, "Martin Fowler", byAuthor[0].Author.Name)

	both, err := f.books.Find(ctx, model.BookFilter{Genre: strPtr("refactoring"), AuthorName: strPtr("Robert Martin")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Clean Code"}, titles(both))
}

func TestGenresKeepOrder(t *testing.T) {
	f := setup(t)
	kent := f.author(t, "Kent Beck")

	f.book(t, "Extreme Programming Explained", kent, "xp", "agile", "classic")

	books, err := f.books.Find(context.Background(), model.BookFilter{})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, []string{"xp", "agile", "classic"}, books[0].Genres)
}

func TestCounts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	martin := f.author(t, "Robert Martin")
	fowler := f.author(t, "Martin Fowler")
	f.book(t, "Clean Code", martin)
	f.book(t, "Clean Architecture", martin)
	f.book(t, "Refactoring", fowler)

	total, err := f.books.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	n, err := f.books.CountByAuthorName(ctx, "Robert Martin")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = f.books.CountByAuthorName(ctx, "Nobody Here")
	require.NoError(t, err)
	assert.Zero(t, n)
}
