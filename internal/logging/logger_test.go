package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithFormat_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithFormat(slog.LevelInfo, "text", &buf)

	logger.Info("tick", "lane", "bubble_sort")
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "msg=tick")
	assert.Contains(t, out, "lane=bubble_sort")
	assert.NotContains(t, out, "hidden")
}

func TestNewWithFormat_JSONRenamesError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithFormat(slog.LevelDebug, "JSON", &buf)

	logger.Warn("save failed", "error", "boom")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "save failed", record["msg"])
	assert.Equal(t, "boom", record["err"])
	assert.NotContains(t, record, "error")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" warn ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"loud":    slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewNop(t *testing.T) {
	assert.NotPanics(t, func() { NewNop().Error("discarded") })
}
