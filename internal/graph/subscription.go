package graph

import (
	"context"

	authorModel "library-backend/internal/domains/author/model"
	bookModel "library-backend/internal/domains/book/model"
	"library-backend/internal/infrastructure/pubsub"
)

// BookAdded streams every book added while the subscription is open. The
// stream ends with ctx, which the websocket transport cancels when the
// client stops the operation or disconnects.
func (r *Resolver) BookAdded(ctx context.Context) <-chan *bookResolver {
	out := make(chan *bookResolver)
	events := r.events.Subscribe(ctx, pubsub.TopicBookAdded)

	go func() {
		defer close(out)
		for payload := range events {
			book, ok := payload.(*bookModel.Book)
			if !ok {
				continue
			}
			select {
			case out <- &bookResolver{book: book, catalog: r.catalog}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// AuthorUpdated streams every author edit while the subscription is open.
func (r *Resolver) AuthorUpdated(ctx context.Context) <-chan *authorResolver {
	out := make(chan *authorResolver)
	events := r.events.Subscribe(ctx, pubsub.TopicAuthorUpdated)

	go func() {
		defer close(out)
		for payload := range events {
			author, ok := payload.(*authorModel.Author)
			if !ok {
				continue
			}
			select {
			case out <- &authorResolver{author: author, catalog: r.catalog}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
