package utils

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := logger
	SetLogger(NewLogger(level, "json", buf))
	t.Cleanup(func() { SetLogger(prev) })
	return buf
}

func TestLogLevels(t *testing.T) {
	buf := captureLogs(t, "warn")

	LogDebug("debug %d", 1)
	LogInfo("info %d", 2)
	LogWarn("warn %d", 3)
	LogError("error %d", 4)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "warn", first["level"])
	assert.Equal(t, "warn 3", first["message"])
}

func TestNewLoggerInvalidLevelFallsBackToInfo(t *testing.T) {
	l := NewLogger("loud", "json", &bytes.Buffer{})
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestTrackTime(t *testing.T) {
	buf := captureLogs(t, "info")

	TrackTime(time.Now().Add(-time.Second), "照合")

	assert.Contains(t, buf.String(), "照合 完了時間")
	assert.Contains(t, buf.String(), `"elapsed"`)
}

func TestLoggerStructuredFields(t *testing.T) {
	buf := captureLogs(t, "info")

	Logger().Info().Str("run_id", "abc").Msg("start")

	assert.Contains(t, buf.String(), `"run_id":"abc"`)
}
