// Package apperror defines the error kinds surfaced to API callers.
//
// Every kind is a go-errors value; the category identifies the kind and the
// text code is what clients see in extensions.code.
package apperror

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Client-facing error codes.
const (
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

const metaInvalidArgs = "invalidArgs"

// Validation reports a constraint violation on create/update.
func Validation(cause error, invalidArgs map[string]any) error {
	e := goerrors.New(cause.Error(), goerrors.CategoryValidation).
		WithTextCode(CodeBadUserInput)
	e.Source = cause
	if invalidArgs != nil {
		e.WithMetadata(map[string]any{metaInvalidArgs: invalidArgs})
	}
	return e
}

// Authentication reports a missing or invalid identity.
func Authentication(message string) error {
	return goerrors.New(message, goerrors.CategoryAuth).
		WithTextCode(CodeUnauthenticated)
}

// UserInput reports bad input that is not a record constraint, e.g. wrong credentials.
func UserInput(message string, invalidArgs map[string]any) error {
	e := goerrors.New(message, goerrors.CategoryBadInput).
		WithTextCode(CodeBadUserInput)
	if invalidArgs != nil {
		e.WithMetadata(map[string]any{metaInvalidArgs: invalidArgs})
	}
	return e
}

func IsValidation(err error) bool     { return hasCategory(err, goerrors.CategoryValidation) }
func IsAuthentication(err error) bool { return hasCategory(err, goerrors.CategoryAuth) }
func IsUserInput(err error) bool      { return hasCategory(err, goerrors.CategoryBadInput) }

// Extensions returns the client-facing extension map for err.
// Errors that are not one of the kinds above are reported as internal.
func Extensions(err error) map[string]any {
	var ge *goerrors.Error
	if !errors.As(err, &ge) {
		return map[string]any{"code": CodeInternal}
	}

	ext := map[string]any{"code": ge.TextCode}
	if ge.TextCode == "" {
		ext["code"] = CodeInternal
	}
	if args, ok := ge.Metadata[metaInvalidArgs]; ok {
		ext[metaInvalidArgs] = args
	}
	return ext
}

// Message returns the client-facing message of err, without the category
// and source decoration Error() adds.
func Message(err error) string {
	var ge *goerrors.Error
	if errors.As(err, &ge) {
		return ge.Message
	}
	return err.Error()
}

func hasCategory(err error, category goerrors.Category) bool {
	var ge *goerrors.Error
	if !errors.As(err, &ge) {
		return false
	}
	return ge.Category == category
}
