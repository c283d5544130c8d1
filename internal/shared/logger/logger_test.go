package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"playlist-server/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LoggingConfig{Level: "info", JSONFormat: true}, &buf)

	log.Debug("hidden")
	log.Info("Playlist generated", "entries", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Playlist generated", entry["msg"])
	assert.Equal(t, float64(3), entry["entries"])
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelDebug, parseLogLevel("verbose"))
}
