package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLoggerFrom(zap.New(core))

	l.Info("classified", map[string]any{"front": "text", "kind": "address"})
	l.Error("failed", map[string]any{"error": errors.New("boom")})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "classified", entries[0].Message)
	assert.Equal(t, "text", entries[0].ContextMap()["front"])
	assert.Equal(t, "address", entries[0].ContextMap()["kind"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestWith(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := With(NewZapLoggerFrom(zap.New(core)), map[string]any{"invocation": "abc"})

	l.Debug("step", map[string]any{"rule": "uri"})
	l.Warn("step", nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "abc", entries[0].ContextMap()["invocation"])
	assert.Equal(t, "uri", entries[0].ContextMap()["rule"])
	assert.Equal(t, "abc", entries[1].ContextMap()["invocation"])
}

func TestWith_NilLogger(t *testing.T) {
	l := With(nil, map[string]any{"a": 1})
	assert.NotPanics(t, func() { l.Info("x", nil) })
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}
