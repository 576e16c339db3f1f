package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json", Output: &buf})

	logger.Info("export finished", "bytes", 123)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "export finished", rec["msg"])
	assert.Equal(t, float64(123), rec["bytes"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Format: "text", Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestNew_AutoFallsBackToJSON(t *testing.T) {
	// A bytes.Buffer is not a terminal.
	var buf bytes.Buffer
	logger := New(Config{Format: "auto", Output: &buf})

	logger.Info("probe")
	assert.True(t, strings.HasPrefix(buf.String(), "{"))
}

func TestSanitizingHandler_CleansMessageAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	redact := func(s string) string { return strings.ReplaceAll(s, "alice", "<user>") }
	logger := New(Config{Format: "json", Output: &buf, Sanitize: redact})

	logger.Info("alice exported a report", "dir", "/home/alice")

	out := buf.String()
	assert.NotContains(t, out, "alice")
	assert.Contains(t, out, "<user>")
}

func TestSanitizingHandler_WithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	redact := func(s string) string { return strings.ReplaceAll(s, "secret", "[REDACTED]") }
	logger := New(Config{Format: "json", Output: &buf, Sanitize: redact})

	logger.With("token", "secret-123").WithGroup("ctx").Info("ok", "note", "secret note")

	out := buf.String()
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "[REDACTED]")
}

func TestNewNop_Discards(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop().Error("dropped", slog.String("k", "v"))
	})
}
