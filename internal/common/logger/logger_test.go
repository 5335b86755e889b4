// internal/common/logger/logger_test.go
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

func TestZapAdapter_FieldsAndScopes(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "match-professionals"})

	log.Info("ranked candidates", map[string]interface{}{"outputCount": 3, "inputCount": 6})
	log.WithError(errors.New("boom")).Error("job failed", nil)
	log.Warn("cache miss", map[string]interface{}{"error": errors.New("redis down")})

	entries := logs.All()
	require.Len(t, entries, 3)

	first := entries[0]
	assert.Equal(t, "ranked candidates", first.Message)
	ctx := first.ContextMap()
	assert.Equal(t, "match-professionals", ctx["taskType"])
	assert.EqualValues(t, 3, ctx["outputCount"])
	assert.EqualValues(t, 6, ctx["inputCount"])

	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	assert.Equal(t, "redis down", entries[2].ContextMap()["error"])
}

func TestToZapFields_SortedKeys(t *testing.T) {
	fields := toZapFields(map[string]interface{}{"b": 1, "a": 2, "c": 3})
	require.Len(t, fields, 3)
	assert.Equal(t, "a", fields[0].Key)
	assert.Equal(t, "b", fields[1].Key)
	assert.Equal(t, "c", fields[2].Key)
	assert.Nil(t, toZapFields(nil))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestConstructors(t *testing.T) {
	assert.NotNil(t, New("info", "json"))
	assert.NotNil(t, NewStructured("debug", "console"))
	NewNoOpLogger().Info("discarded", nil)
	NewTestLogger(t).Debug("visible in -v", map[string]interface{}{"k": "v"})
}
