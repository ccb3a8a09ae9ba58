package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFilePath(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)

	got := LogFilePath("/var/log/chartsync", "chartsyncd", start)

	want := filepath.Join("/var/log/chartsync", "chartsyncd.20250601_123045.log")
	assert.Equal(t, want, got)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("INFO"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNew_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.log")

	logger, err := New(Options{
		Level:         "debug",
		ConsoleWriter: &bytes.Buffer{},
		FilePath:      path,
	})
	require.NoError(t, err)

	logger.Info().Str("component", "test").Msg("hello from the chart daemon")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "hello from the chart daemon")
	assert.Contains(t, string(raw), `"component":"test"`)
}

func TestNew_LevelFilters(t *testing.T) {
	var console bytes.Buffer

	logger, err := New(Options{Level: "error", ConsoleWriter: &console})
	require.NoError(t, err)

	logger.Debug().Msg("too quiet")
	logger.Error().Msg("loud enough")

	out := console.String()
	assert.NotContains(t, out, "too quiet")
	assert.Contains(t, out, "loud enough")
}

func TestAdapter_FieldPairs(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	a := NewAdapter(logger)
	a.Info("reconcile pass", "added", 2, "removed", 1)
	a.Error("sync failed", "error", "boom")
	a.Debug("odd trailing key is dropped", "only-key")

	out := buf.String()
	assert.Contains(t, out, `"added":2`)
	assert.Contains(t, out, `"removed":1`)
	assert.Contains(t, out, `"error":"boom"`)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)
}
