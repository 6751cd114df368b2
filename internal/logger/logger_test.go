package logger

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbolino/modinv/config"
)

func readEntries(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, sc.Err())
	return entries
}

func TestNewLogger(t *testing.T) {
	t.Run("console format on stderr", func(t *testing.T) {
		logger, err := NewLogger(&config.LoggingConfig{Level: "info", Format: "console", Output: "stderr"})
		require.NoError(t, err)
		require.NotNil(t, logger)
		logger.Info("test message")
		assert.NoError(t, logger.Close())
	})

	t.Run("json format to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.log")
		logger, err := NewLogger(&config.LoggingConfig{Level: "info", Format: "json", Output: "file", FilePath: path})
		require.NoError(t, err)

		logger.Debug("filtered out")
		logger.Info("kept")
		require.NoError(t, logger.Close())

		entries := readEntries(t, path)
		require.Len(t, entries, 1)
		assert.Equal(t, "kept", entries[0]["message"])
		assert.Equal(t, "info", entries[0]["level"])
	})

	t.Run("rejects unknown settings", func(t *testing.T) {
		_, err := NewLogger(&config.LoggingConfig{Level: "loud"})
		assert.Error(t, err)
		_, err = NewLogger(&config.LoggingConfig{Format: "xml"})
		assert.Error(t, err)
		_, err = NewLogger(&config.LoggingConfig{Output: "syslog"})
		assert.Error(t, err)
	})
}

func TestLogger_WithContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	logger, err := NewLogger(&config.LoggingConfig{Level: "debug", Format: "json", Output: "file", FilePath: path})
	require.NoError(t, err)

	ctx := WithTraceID(context.Background(), "trace-123")
	logger.WithContext(ctx).Info("with trace")
	logger.WithContext(context.Background()).Info("without trace")
	require.NoError(t, logger.Close())

	entries := readEntries(t, path)
	require.Len(t, entries, 2)
	assert.Equal(t, "trace-123", entries[0]["trace_id"])
	assert.NotContains(t, entries[1], "trace_id")
}

func TestTraceID(t *testing.T) {
	ctx := WithTraceID(context.Background(), "")
	id := GetTraceID(ctx)
	assert.Len(t, id, 36)
	assert.NotEqual(t, id, GetTraceID(WithTraceID(context.Background(), "")))
	assert.Empty(t, GetTraceID(context.Background()))
}
