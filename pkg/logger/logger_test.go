package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	Init("test", "debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	Init("test", "nonsense")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	Init("test", "")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})
	return &buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestHelpers(t *testing.T) {
	buf := captureLogs(t)

	Info("book added", map[string]interface{}{"title": "Clean Code"})
	entry := lastLine(t, buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "book added", entry["message"])
	assert.Equal(t, "Clean Code", entry["title"])

	Warn("user cache read failed", map[string]interface{}{"key": "user:1"})
	entry = lastLine(t, buf)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "user:1", entry["key"])

	Debug("token carries a malformed user id")
	assert.Equal(t, "debug", lastLine(t, buf)["level"])

	Error("resolver failed", errors.New("connection refused"))
	entry = lastLine(t, buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "connection refused", entry["error"])
}
