package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		mode, level string
		enabled     zapcore.Level
		disabled    zapcore.Level
	}{
		{"dev", "", zapcore.DebugLevel, zapcore.InvalidLevel},
		{"prod", "", zapcore.InfoLevel, zapcore.DebugLevel},
		{"production", "warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"dev", "error", zapcore.ErrorLevel, zapcore.WarnLevel},
	}

	for _, tc := range tests {
		t.Run(tc.mode+"/"+tc.level, func(t *testing.T) {
			l, err := New(tc.mode, tc.level)
			require.NoError(t, err)
			core := l.Desugar().Core()
			assert.True(t, core.Enabled(tc.enabled))
			if tc.disabled != zapcore.InvalidLevel {
				assert.False(t, core.Enabled(tc.disabled))
			}
		})
	}
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New("dev", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log level "loud"`)
}

func TestLoggerWith(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("file", "a.parquet").Info("loaded", "rows", 3)
	l.Debug("debug")
	l.Warn("warn")
	l.Error("error")

	require.Equal(t, 4, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, "loaded", first.Message)
	assert.Equal(t, "a.parquet", first.ContextMap()["file"])
	assert.Equal(t, int64(3), first.ContextMap()["rows"])
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("ignored")
	assert.False(t, l.Desugar().Core().Enabled(zapcore.ErrorLevel))
}
