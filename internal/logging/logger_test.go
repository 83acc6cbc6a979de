package logging_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/marquee/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText_NormalisesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewText(&buf, slog.LevelInfo)
	logger.Info("failed", "error", errors.New("boom"))
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "err=boom")
	assert.NotContains(t, out, "error=")
	assert.NotContains(t, out, "hidden")
}

func TestNewPretty_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewPretty(&buf, slog.LevelWarn)
	logger.Info("quiet")
	assert.Zero(t, buf.Len())

	logger.Warn("loud", "mode", "grid")
	assert.Contains(t, buf.String(), "loud")
	assert.Contains(t, buf.String(), "grid")
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := logging.ParseLevel("loud")
	assert.Error(t, err)
}

func TestForFormat(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "log.txt"))
	require.NoError(t, err)
	defer f.Close()

	// A regular file is not a terminal, so auto falls back to text.
	logger, err := logging.ForFormat(f, "auto", slog.LevelInfo)
	require.NoError(t, err)
	logger.Info("hello", "error", "x")
	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), "err=x")

	_, err = logging.ForFormat(f, "json", slog.LevelInfo)
	assert.Error(t, err)
}

func TestNewNop(t *testing.T) {
	assert.NotPanics(t, func() { logging.NewNop().Error("nothing") })
}
