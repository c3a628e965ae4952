package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel(" error "))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, LevelWarn)
	defer Configure(os.Stdout, LevelInfo)

	l := New("alice")
	l.Info("hidden %d", 1)
	l.Warn("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] [alice] shown 2")
}

func TestWithKeepsWriter(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, LevelDebug)
	defer Configure(os.Stdout, LevelInfo)

	Global.With("api").Debug("ping")
	assert.Contains(t, buf.String(), "[DEBUG] [api] ping")
}
