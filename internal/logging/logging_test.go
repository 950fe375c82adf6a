package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maxgear/internal/domain"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("visible", slog.String("k", "v"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "visible", record["msg"])
	assert.Equal(t, "maxgear", record["app"])
	assert.Equal(t, "v", record["k"])
}

func TestLogEventWritesSearchFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug", "text")

	LogEvent(logger, domain.SearchFailedEvent{
		Seq:     3,
		Query:   "febest",
		Message: "catalog service unreachable",
		Err:     errors.New("dial tcp: refused"),
		Elapsed: 20 * time.Millisecond,
	})
	LogEvent(logger, domain.SearchDiscardedEvent{Seq: 1, Latest: 2, Query: "old"})

	out := buf.String()
	assert.Contains(t, out, "search failed")
	assert.Contains(t, out, "query=febest")
	assert.Contains(t, out, "seq=3")
	assert.Contains(t, out, "stale search result discarded")
	assert.Contains(t, out, "latest=2")
}

func TestOpenFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "maxgear.log")

	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.WriteString("line\n")
	require.NoError(t, err)
	assert.FileExists(t, path)
}
