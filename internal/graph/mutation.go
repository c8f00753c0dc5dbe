package graph

import (
	"context"

	authorModel "library-backend/internal/domains/author/model"
	bookModel "library-backend/internal/domains/book/model"
	userModel "library-backend/internal/domains/user/model"
)

type addBookArgs struct {
	Title     string
	Author    string
	Published int32
	Genres    []*string
}

func (r *Resolver) AddBook(ctx context.Context, args addBookArgs) (*bookResolver, error) {
	genres := make([]string, 0, len(args.Genres))
	for _, g := range args.Genres {
		// null list entries are dropped
		if g != nil {
			genres = append(genres, *g)
		}
	}

	book, err := r.catalog.AddBook(ctx, bookModel.AddBookRequest{
		Title:      args.Title,
		AuthorName: args.Author,
		Published:  args.Published,
		Genres:     genres,
	})
	if err != nil {
		return nil, wrap(err)
	}
	return &bookResolver{book: book, catalog: r.catalog}, nil
}

type editAuthorArgs struct {
	Name      string
	SetBornTo *int32
}

func (r *Resolver) EditAuthor(ctx context.Context, args editAuthorArgs) (*authorResolver, error) {
	author, err := r.catalog.EditAuthor(ctx, authorModel.EditAuthorRequest{
		Name:      args.Name,
		SetBornTo: args.SetBornTo,
	})
	if err != nil {
		return nil, wrap(err)
	}
	if author == nil {
		return nil, nil
	}
	return &authorResolver{author: author, catalog: r.catalog}, nil
}

type addUserArgs struct {
	Username      string
	FavoriteGenre string
}

func (r *Resolver) AddUser(ctx context.Context, args addUserArgs) (*userResolver, error) {
	u, err := r.users.AddUser(ctx, userModel.AddUserRequest{
		Username:      args.Username,
		FavoriteGenre: args.FavoriteGenre,
	})
	if err != nil {
		return nil, wrap(err)
	}
	return &userResolver{user: u}, nil
}

type loginArgs struct {
	Username string
	Password string
}

func (r *Resolver) Login(ctx context.Context, args loginArgs) (*tokenResolver, error) {
	res, err := r.users.Login(ctx, userModel.LoginRequest{
		Username: args.Username,
		Password: args.Password,
	})
	if err != nil {
		return nil, wrap(err)
	}
	return &tokenResolver{res: res}, nil
}
