package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	require.Equal(t, slog.LevelWarn, parseLogLevel("WARN"))
	require.Equal(t, slog.LevelError, parseLogLevel(" error "))
	require.Equal(t, slog.LevelInfo, parseLogLevel(""))
	require.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestLogFileWriter_KeepsTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")
	w, err := newLogFileWriter(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	w.maxSize = 64
	w.keep = 32

	_, err = w.Write([]byte(strings.Repeat("a", 60)))
	require.NoError(t, err)
	_, err = w.Write([]byte(strings.Repeat("b", 10)))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 32)
	require.True(t, strings.HasSuffix(string(data), strings.Repeat("b", 10)))

	_, err = w.Write([]byte("c"))
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 33)
}
