package log

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for _, l := range []Level{LevelError, LevelWarn, LevelInfo, LevelDebug, LevelTrace} {
		got, err := ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLoggerWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.Info("spawned %d demons", 3)
	l.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]string
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "spawned 3 demons", entry["msg"])
	assert.Equal(t, "2024-01-02T03:04:05Z", entry["time"])
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelError)
	l.Warn("dropped")
	assert.Zero(t, buf.Len())

	l.SetLevel(LevelTrace)
	l.Trace("kept")
	assert.Contains(t, buf.String(), `"level":"trace"`)
}

func TestOpenFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storydemon.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	l := New(f, LevelInfo)
	l.Error("boom")
	require.NoError(t, f.Sync())
	assert.FileExists(t, path)
}
