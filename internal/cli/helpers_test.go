package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/lineator/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lineator.log")
	logger, err := NewLogger(config.LogConfig{Level: "warn", File: path}, false)
	require.NoError(t, err)

	logger.Info("skipped")
	logger.Warn("kept", "machine", "Inc")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"kept"`)
	assert.NotContains(t, string(data), "skipped")
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, err := NewLogger(config.LogConfig{Level: "loud"}, false)
	assert.Error(t, err)
}

func TestNewLogger_DebugOverridesLevel(t *testing.T) {
	logger, err := NewLogger(config.LogConfig{Level: "error"}, true)
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}
