package baldeslog

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_DefaultsToJSONWarn(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Writer: &buf})

	Debug("should not appear")
	Info("should not appear either")
	Warn("rollback triggered", "cuts_dropped", 3)

	out := buf.String()
	assert.False(t, strings.Contains(out, "should not appear"))
	require.True(t, strings.Contains(out, "rollback triggered"))

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &record))
	assert.Equal(t, float64(3), record["cuts_dropped"])
}

func TestInit_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Writer: &buf, Level: "info", Format: "text"})

	Info("stage promoted", "stage", 2)

	out := buf.String()
	assert.True(t, strings.Contains(out, "stage promoted"))
	assert.True(t, strings.Contains(out, "stage=2"))
}

func TestWithCall_AddsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Writer: &buf, Level: "info"})

	WithCall("call-42").Info("seeded depot")

	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
	assert.Equal(t, "call-42", record["call_id"])
}

func TestSetLogger_RejectsNil(t *testing.T) {
	before := Log
	SetLogger(nil)
	assert.Same(t, before, Log)
}
