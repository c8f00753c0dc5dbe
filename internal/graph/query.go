package graph

import (
	"context"

	bookModel "library-backend/internal/domains/book/model"
)

func (r *Resolver) BookCount(ctx context.Context) (int32, error) {
	n, err := r.catalog.BookCount(ctx)
	if err != nil {
		return 0, wrap(err)
	}
	return int32(n), nil
}

func (r *Resolver) AuthorCount(ctx context.Context) (int32, error) {
	n, err := r.catalog.AuthorCount(ctx)
	if err != nil {
		return 0, wrap(err)
	}
	return int32(n), nil
}

type allBooksArgs struct {
	Genre  *string
	Author *string
}

func (r *Resolver) AllBooks(ctx context.Context, args allBooksArgs) ([]*bookResolver, error) {
	books, err := r.catalog.AllBooks(ctx, bookModel.BookFilter{
		Genre:      args.Genre,
		AuthorName: args.Author,
	})
	if err != nil {
		return nil, wrap(err)
	}

	out := make([]*bookResolver, len(books))
	for i := range books {
		out[i] = &bookResolver{book: &books[i], catalog: r.catalog}
	}
	return out, nil
}

func (r *Resolver) AllAuthors(ctx context.Context) ([]*authorResolver, error) {
	authors, err := r.catalog.AllAuthors(ctx)
	if err != nil {
		return nil, wrap(err)
	}

	out := make([]*authorResolver, len(authors))
	for i := range authors {
		out[i] = &authorResolver{author: &authors[i], catalog: r.catalog}
	}
	return out, nil
}

func (r *Resolver) Me(ctx context.Context) *userResolver {
	u := r.users.Me(ctx)
	if u == nil {
		return nil
	}
	return &userResolver{user: u}
}
