package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/identity"
)

const (
	ContextKeyUserID = "user_id"

	bearerScheme = "bearer"
)

// IdentityResolver maps a bearer token to a user; see the user service.
type IdentityResolver interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// Identity attaches the caller's identity to the request context.
//
// A missing header or a non-bearer scheme leaves the request anonymous. A
// bearer scheme with an empty or unverifiable token rejects the request
// with 401.
func Identity(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if ok && token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				errorBody("invalid token", apperror.CodeUnauthenticated))
			return
		}

		u, err := resolver.Authenticate(c.Request.Context(), token)
		if err != nil {
			if apperror.IsAuthentication(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					errorBody(apperror.Message(err), apperror.CodeUnauthenticated))
				return
			}

			log.Error().
				Str("request_id", c.GetString(ContextKeyRequestID)).
				Err(err).
				Msg("identity lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				errorBody("internal server error", apperror.CodeInternal))
			return
		}

		if u != nil {
			c.Set(ContextKeyUserID, u.ID())
		}
		c.Request = c.Request.WithContext(identity.WithUser(c.Request.Context(), u))

		c.Next()
	}
}

// BearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively; ok reports whether the header uses
// it, so "Bearer" with no token yields "", true.
func BearerToken(header string) (token string, ok bool) {
	header = strings.TrimSpace(header)
	if len(header) < len(bearerScheme) || !strings.EqualFold(header[:len(bearerScheme)], bearerScheme) {
		return "", false
	}

	rest := header[len(bearerScheme):]
	if rest == "" {
		return "", true
	}
	if rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
