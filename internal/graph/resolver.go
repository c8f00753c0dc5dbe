// Package graph binds the catalog API schema to the catalog and user services.
package graph

import (
	"context"
	_ "embed"

	graphql "github.com/graph-gophers/graphql-go"

	catalogService "library-backend/internal/domains/catalog/service"
	userService "library-backend/internal/domains/user/service"
	"library-backend/internal/infrastructure/pubsub"
)

//go:embed schema.graphql
var schemaSDL string

// Subscriber is the subscription side of the change notification bus.
type Subscriber interface {
	Subscribe(ctx context.Context, topic pubsub.Topic) <-chan any
}

// Resolver is the root resolver. Every schema field maps to one method.
type Resolver struct {
	catalog catalogService.ServiceInterface
	users   userService.ServiceInterface
	events  Subscriber
}

// NewResolver creates the root resolver
func NewResolver(catalog catalogService.ServiceInterface, users userService.ServiceInterface, events Subscriber) *Resolver {
	return &Resolver{
		catalog: catalog,
		users:   users,
		events:  events,
	}
}

// NewSchema parses the embedded schema against the root resolver.
func NewSchema(r *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(schemaSDL, r,
		graphql.Logger(panicLogger{}),
	)
}
