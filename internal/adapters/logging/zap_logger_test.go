package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/andrescamacho/research-queue/internal/adapters/logging"
	"github.com/andrescamacho/research-queue/internal/application/common"
	"github.com/andrescamacho/research-queue/internal/infrastructure/config"
)

func TestZapLogger_MapsLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewZapLoggerFrom(zap.New(core))

	logger.Log(common.LevelDebug, "debug", nil)
	logger.Log(common.LevelInfo, "info", map[string]interface{}{"project_id": "smithing"})
	logger.Log(common.LevelWarning, "warn", nil)
	logger.Log(common.LevelError, "error", nil)
	logger.Log("TRACE", "unknown falls back to info", nil)

	entries := logs.AllUntimed()
	require.Len(t, entries, 5)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "smithing", entries[1].ContextMap()["project_id"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[4].Level)
}

func TestNewZapLogger_InvalidLevel(t *testing.T) {
	_, err := logging.NewZapLogger(config.LoggingConfig{Level: "verbose", Format: "json", Output: "stderr"})

	assert.Error(t, err)
}

func TestNewZapLogger_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "research.log")
	logger, err := logging.NewZapLogger(config.LoggingConfig{
		Level:    "warn",
		Format:   "json",
		Output:   "file",
		FilePath: path,
	})
	require.NoError(t, err)

	logger.Log(common.LevelInfo, "below threshold", nil)
	logger.Log(common.LevelError, "researched without having an active project", map[string]interface{}{"amount": 5})
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "below threshold")
	assert.Contains(t, string(data), `"msg":"researched without having an active project"`)
	assert.Contains(t, string(data), `"amount":5`)
}

func TestNewZapLoggerFrom_NilIsNop(t *testing.T) {
	logger := logging.NewZapLoggerFrom(nil)

	assert.NotPanics(t, func() { logger.Log(common.LevelInfo, "ignored", nil) })
	assert.NotNil(t, logger.Zap())
}
