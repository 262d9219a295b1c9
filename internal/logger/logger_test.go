package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	cfg := NewConfig("info", "json", "test-svc", "test", "test", false)
	InitLogger(cfg, &buf)
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))) })

	slog.Info("hello", "key", "value")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "test-svc", entry[AttrKeyService])
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()

	_, ok := RequestIDFromContext(ctx)
	assert.False(t, ok)

	id := GenerateRequestID()
	ctx = WithRequestID(ctx, id)

	got, ok := RequestIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestConfigLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		cfg := Config{Level: tt.level}
		assert.Equal(t, tt.expected, cfg.LogLevel(), "level: %s", tt.level)
	}
}

func TestProductionConfig(t *testing.T) {
	cfg := ProductionConfig()
	assert.True(t, cfg.IsJSON())
	assert.Equal(t, EnvironmentProduction, cfg.Environment)
	assert.False(t, cfg.AddSource)
}
