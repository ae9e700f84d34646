package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestSetupWritesJSONToFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "nested", "actind.log")
	logger, closer, err := Setup(file, "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("visible", "provider", "gopls")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"msg":"visible"`)
	assert.Contains(t, string(data), `"provider":"gopls"`)
}

func TestSetupWithoutFileDiscards(t *testing.T) {
	t.Parallel()

	logger, closer, err := Setup("", "debug")
	require.NoError(t, err)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
	assert.NoError(t, closer.Close())
}
