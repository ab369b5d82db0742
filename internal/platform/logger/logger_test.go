package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel(" DEBUG "))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: slog.LevelInfo, Format: FormatJSON, App: "refugio", Output: &buf})

	l.Debug("hidden", nil)
	l.With(map[string]any{"module": "dogs"}).Info("dog created", map[string]any{"dog_id": "d1", "": "dropped"})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "dog created", entry["msg"])
	assert.Equal(t, "refugio", entry["app"])
	assert.Equal(t, "dogs", entry["module"])
	assert.Equal(t, "d1", entry["dog_id"])
	assert.NotContains(t, entry, "")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().With(map[string]any{"a": 1}).Error("ignored", nil)
	})
}
