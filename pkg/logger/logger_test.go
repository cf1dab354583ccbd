package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/stockscreen/pkg/config"
)

func jsonConfig(level string) *config.Config {
	return &config.Config{Env: "test", LogLevel: level, LogFormat: "json"}
}

// lines decodes every JSON log line written to buf
func lines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()

	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry)
	}
	return out
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}

	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), "LOG_LEVEL=%q", in)
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(jsonConfig("debug"), &buf)

	log.WithField("symbol", "AAPL").Info("Quote fetched")

	entries := lines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "Quote fetched", entries[0]["message"])
	assert.Equal(t, "AAPL", entries[0]["symbol"])
	assert.Equal(t, "test", entries[0]["env"])
	assert.Contains(t, entries[0], "time")
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&config.Config{Env: "test", LogLevel: "info", LogFormat: "console"}, &buf)

	log.Info("Screens completed")

	out := buf.String()
	assert.Contains(t, out, "Screens completed")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "console output is not JSON")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(jsonConfig("warn"), &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Debug("dropped")
	log.Info("dropped")
	log.Warn("kept warn")
	log.Error("kept error")

	entries := lines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[0]["level"])
	assert.Equal(t, "error", entries[1]["level"])
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(jsonConfig("info"), &buf)

	child := log.WithFields(map[string]interface{}{
		"endpoint": "/quote",
		"status":   429,
	})
	child.Warn("API returned error status")
	log.Info("parent unchanged")

	entries := lines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "/quote", entries[0]["endpoint"])
	assert.Equal(t, float64(429), entries[0]["status"])
	assert.NotContains(t, entries[1], "endpoint")
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(jsonConfig("info"), &buf)

	log.WithError(errors.New("connection refused")).Error("API request failed")

	entries := lines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "connection refused", entries[0]["error"])
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(jsonConfig("info"), &buf)

	log.WithContext(context.Background()).WithField("run_id", "r1").Info("Starting screens")

	entries := lines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "r1", entries[0]["run_id"])
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.WithField("k", "v").WithError(errors.New("x")).Error("discarded")
	})
}
