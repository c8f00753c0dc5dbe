package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/identity"
	"library-backend/internal/shared/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubResolver accepts "good" and rejects "bad"; "broken" fails the lookup.
type stubResolver struct {
	seen []string
}

func (s *stubResolver) Authenticate(_ context.Context, token string) (*model.User, error) {
	s.seen = append(s.seen, token)
	switch token {
	case "":
		return nil, nil
	case "good":
		return &model.User{Key: 1, Username: "mluukkai"}, nil
	case "broken":
		return nil, errors.New("connection refused")
	default:
		return nil, apperror.Authentication("invalid token")
	}
}

func newRouter(resolver middleware.IdentityResolver) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestID(), middleware.Logger(), middleware.Identity(resolver))
	r.GET("/whoami", func(c *gin.Context) {
		u := identity.UserFromContext(c.Request.Context())
		if u == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, u.Username)
	})
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	return r
}

func get(r http.Handler, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		bearer bool
	}{
		{header: "", want: "", bearer: false},
		{header: "Bearer abc", want: "abc", bearer: true},
		{header: "bearer abc", want: "abc", bearer: true},
		{header: "BEARER abc", want: "abc", bearer: true},
		{header: "Basic abc", want: "", bearer: false},
		{header: "Bearer", want: "", bearer: true},
		{header: "Bearer ", want: "", bearer: true},
		{header: "Bearerabc", want: "", bearer: false},
	}
	for _, tt := range tests {
		got, ok := middleware.BearerToken(tt.header)
		assert.Equal(t, tt.want, got, tt.header)
		assert.Equal(t, tt.bearer, ok, tt.header)
	}
}

func TestIdentityAnonymous(t *testing.T) {
	r := newRouter(&stubResolver{})

	for _, header := range []string{"", "Basic dXNlcjpwYXNz"} {
		rec := get(r, "/whoami", header)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "anonymous", rec.Body.String())
	}
}

func TestIdentityAuthenticated(t *testing.T) {
	resolver := &stubResolver{}
	r := newRouter(resolver)

	rec := get(r, "/whoami", "bearer good")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mluukkai", rec.Body.String())
	assert.Equal(t, []string{"good"}, resolver.seen)
}

func TestIdentityRejectsInvalidToken(t *testing.T) {
	rec := get(newRouter(&stubResolver{}), "/whoami", "Bearer bad")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body struct {
		Errors []struct {
			Message    string            `json:"message"`
			Extensions map[string]string `json:"extensions"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "invalid token", body.Errors[0].Message)
	assert.Equal(t, apperror.CodeUnauthenticated, body.Errors[0].Extensions["code"])
}

func TestIdentityRejectsEmptyBearerToken(t *testing.T) {
	resolver := &stubResolver{}
	r := newRouter(resolver)

	for _, header := range []string{"Bearer", "bearer "} {
		rec := get(r, "/whoami", header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Contains(t, rec.Body.String(), apperror.CodeUnauthenticated)
	}
	assert.Empty(t, resolver.seen)
}

func TestIdentityLookupFailure(t *testing.T) {
	rec := get(newRouter(&stubResolver{}), "/whoami", "Bearer broken")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apperror.CodeInternal)
}

func TestRequestID(t *testing.T) {
	r := newRouter(&stubResolver{})

	rec := get(r, "/whoami", "")
	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(middleware.HeaderRequestID))
}

func TestRecovery(t *testing.T) {
	rec := get(newRouter(&stubResolver{}), "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}
