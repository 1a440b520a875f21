package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	assert.NoError(t, os.Setenv("APP_ENV", "dev"))
	defer func() { assert.NoError(t, os.Unsetenv("APP_ENV")) }()
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "perfmap", "warn")
	l.Infof("hidden")
	l.Warnf("missing optional field %s", "description")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "warn", rec["level"])
	assert.Equal(t, "perfmap", rec["component"])
	assert.Equal(t, "missing optional field description", rec["message"])
}

func TestNewWithWriter_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "perfmap", "loud")
	l.Debugf("hidden")
	l.Infof("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.NotContains(t, buf.String(), "hidden")
}
