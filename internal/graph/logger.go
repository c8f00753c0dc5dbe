package graph

import (
	"context"
	"runtime/debug"

	"github.com/rs/zerolog/log"
)

// panicLogger reports resolver panics through zerolog.
type panicLogger struct{}

func (panicLogger) LogPanic(_ context.Context, value interface{}) {
	log.Error().
		Interface("panic", value).
		Bytes("stack", debug.Stack()).
		Msg("graphql resolver panic")
}
