package logging

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":  slog.LevelDebug,
		"INFO":   slog.LevelInfo,
		" warn ": slog.LevelWarn,
		"error":  slog.LevelError,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestInit_WritesToStateDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	previous := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(previous)
		log.SetOutput(os.Stderr)
	})

	closeLog, err := Init("debug")
	require.NoError(t, err)

	slog.Debug("drag dropped", "card_id", "7")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(filepath.Join(dir, "corkboard", "corkboard.log"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "card_id=7"))
}

func TestInit_RejectsUnknownLevel(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	_, err := Init("chatty")
	assert.Error(t, err)
}
