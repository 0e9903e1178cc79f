package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptionsMissingFile(t *testing.T) {
	opts, err := LoadOptions(filepath.Join(t.TempDir(), "logging.yaml"))
	require.NoError(t, err, "a missing options file yields defaults")
	assert.Equal(t, Options{}, opts)
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logging.yaml")
	require.NoError(t, os.WriteFile(path, []byte("level: debug\nno_color: true\n"), 0644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", opts.Level)
	assert.True(t, opts.NoColor)
}

func TestLoadOptionsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logging.yaml")
	require.NoError(t, os.WriteFile(path, []byte("level: [broken"), 0644))

	_, err := LoadOptions(path)
	assert.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, level, err := New(Options{Level: "warn", File: path})
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level.Level())

	log.Info("hidden")
	log.Warn("visible")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "hidden")
	assert.Contains(t, string(content), "visible")

	// The level can be raised after construction.
	level.Set(slog.LevelDebug)
	log.Debug("now visible")
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "now visible")
}
