package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapAdapter_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).
		WithFields(map[string]interface{}{"taskType": "analyze-profile"}).
		WithError(errors.New("boom"))

	log.Info("processing job", map[string]interface{}{"jobKey": int64(42)})
	log.With(map[string]interface{}{"userId": "u-1"}).Warn("profile incomplete", nil)

	entries := logs.All()
	assert.Len(t, entries, 2)
	first := entries[0].ContextMap()
	assert.Equal(t, "analyze-profile", first["taskType"])
	assert.Equal(t, int64(42), first["jobKey"])
	assert.Equal(t, "boom", first["error"])
	assert.Equal(t, "u-1", entries[1].ContextMap()["userId"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestNew_Levels(t *testing.T) {
	assert.True(t, New("debug", "json").Core().Enabled(zapcore.DebugLevel))
	assert.False(t, New("warn", "console").Core().Enabled(zapcore.InfoLevel))
	assert.True(t, New("nonsense", "json").Core().Enabled(zapcore.InfoLevel))
	assert.False(t, New("nonsense", "json").Core().Enabled(zapcore.DebugLevel))
}

func TestNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	assert.NotPanics(t, func() {
		log.WithError(errors.New("x")).Error("ignored", map[string]interface{}{"a": 1})
	})
}

func TestMapToZapFields_SortedAndErrors(t *testing.T) {
	fields := mapToZapFields(map[string]interface{}{
		"userId": "u-1",
		"error":  errors.New("catalog down"),
		"count":  3,
	})

	assert.Len(t, fields, 3)
	assert.Equal(t, "count", fields[0].Key)
	assert.Equal(t, "error", fields[1].Key)
	assert.Equal(t, zapcore.ErrorType, fields[1].Type)
	assert.Equal(t, "userId", fields[2].Key)
	assert.Nil(t, mapToZapFields(nil))
}
