// Package identity carries the authenticated user through a request context.
package identity

import (
	"context"

	"library-backend/internal/domains/user/model"
)

type ctxKey struct{}

// WithUser returns ctx carrying u. A nil u marks the request anonymous.
func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the authenticated user, or nil when anonymous.
func UserFromContext(ctx context.Context) *model.User {
	u, _ := ctx.Value(ctxKey{}).(*model.User)
	return u
}
