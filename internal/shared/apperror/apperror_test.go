package apperror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"library-backend/internal/shared/apperror"
)

func TestKinds(t *testing.T) {
	t.Parallel()

	validation := apperror.Validation(errors.New("name: the length must be no less than 4."), map[string]any{"author": "Bob"})
	auth := apperror.Authentication("not authenticated")
	input := apperror.UserInput("wrong credentials", nil)

	assert.True(t, apperror.IsValidation(validation))
	assert.False(t, apperror.IsAuthentication(validation))

	assert.True(t, apperror.IsAuthentication(auth))
	assert.False(t, apperror.IsUserInput(auth))

	assert.True(t, apperror.IsUserInput(input))
	assert.False(t, apperror.IsValidation(input))

	assert.Equal(t, "not authenticated", apperror.Message(auth))
	assert.Equal(t, "wrong credentials", apperror.Message(input))
}

func TestKindsSurviveWrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("add book: %w", apperror.Authentication("not authenticated"))
	assert.True(t, apperror.IsAuthentication(err))
}

func TestExtensions(t *testing.T) {
	t.Parallel()

	args := map[string]any{"title": "T1"}
	ext := apperror.Extensions(apperror.Validation(errors.New("bad"), args))
	assert.Equal(t, apperror.CodeBadUserInput, ext["code"])
	assert.Equal(t, args, ext["invalidArgs"])

	ext = apperror.Extensions(apperror.Authentication("not authenticated"))
	assert.Equal(t, apperror.CodeUnauthenticated, ext["code"])
	assert.NotContains(t, ext, "invalidArgs")

	ext = apperror.Extensions(errors.New("connection refused"))
	assert.Equal(t, apperror.CodeInternal, ext["code"])
}

func TestValidationKeepsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("username already exists")
	err := apperror.Validation(cause, nil)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "username already exists", apperror.Message(err))
	assert.Equal(t, "plain", apperror.Message(errors.New("plain")))
}
