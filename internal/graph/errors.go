package graph

import (
	"library-backend/internal/shared/apperror"
	"library-backend/pkg/logger"
)

const internalMessage = "internal server error"

// resolverError is what every resolver returns instead of a bare error, so
// the client sees the plain message and the extensions (code, invalidArgs).
type resolverError struct {
	err error
	ext map[string]any
}

func (e *resolverError) Error() string {
	if e.ext["code"] == apperror.CodeInternal {
		return internalMessage
	}
	return apperror.Message(e.err)
}

func (e *resolverError) Extensions() map[string]interface{} {
	return e.ext
}

func (e *resolverError) Unwrap() error {
	return e.err
}

// wrap converts a service error for the client. Internal failures are logged
// and reported without detail.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	ext := apperror.Extensions(err)
	if ext["code"] == apperror.CodeInternal {
		logger.Error("resolver failed", err)
	}
	return &resolverError{err: err, ext: ext}
}
