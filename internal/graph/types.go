package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	authorModel "library-backend/internal/domains/author/model"
	bookModel "library-backend/internal/domains/book/model"
	catalogService "library-backend/internal/domains/catalog/service"
	userModel "library-backend/internal/domains/user/model"
)

// ========================================
// AUTHOR
// ========================================

type authorResolver struct {
	author  *authorModel.Author
	catalog catalogService.ServiceInterface
}

func (r *authorResolver) ID() graphql.ID {
	return graphql.ID(r.author.ID())
}

func (r *authorResolver) Name() string {
	return r.author.Name
}

func (r *authorResolver) Born() *int32 {
	return r.author.Born
}

// BookCount is derived on every read.
func (r *authorResolver) BookCount(ctx context.Context) (*int32, error) {
	n, err := r.catalog.AuthorBookCount(ctx, r.author)
	if err != nil {
		return nil, wrap(err)
	}
	count := int32(n)
	return &count, nil
}

// ========================================
// BOOK
// ========================================

type bookResolver struct {
	book    *bookModel.Book
	catalog catalogService.ServiceInterface
}

func (r *bookResolver) ID() graphql.ID {
	return graphql.ID(r.book.ID())
}

func (r *bookResolver) Title() string {
	return r.book.Title
}

func (r *bookResolver) Published() int32 {
	return r.book.Published
}

func (r *bookResolver) Genres() []*string {
	out := make([]*string, len(r.book.Genres))
	for i := range r.book.Genres {
		out[i] = &r.book.Genres[i]
	}
	return out
}

func (r *bookResolver) Author() *authorResolver {
	author := r.book.Author
	if author == nil {
		author = &authorModel.Author{Key: r.book.AuthorKey}
	}
	return &authorResolver{author: author, catalog: r.catalog}
}

// ========================================
// USER & TOKEN
// ========================================

type userResolver struct {
	user *userModel.User
}

func (r *userResolver) ID() graphql.ID {
	return graphql.ID(r.user.ID())
}

func (r *userResolver) Username() string {
	return r.user.Username
}

func (r *userResolver) FavoriteGenre() string {
	return r.user.GenreOrEmpty()
}

type tokenResolver struct {
	res *userModel.LoginResponse
}

func (r *tokenResolver) Value() string {
	return r.res.Token
}

func (r *tokenResolver) User() *userResolver {
	if r.res.User == nil {
		return nil
	}
	return &userResolver{user: r.res.User}
}
