package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/andrescamacho/research-queue/internal/application/common"
	"github.com/andrescamacho/research-queue/internal/infrastructure/config"
)

// ZapLogger implements common.Logger on top of a zap.Logger
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger builds a zap logger from the logging configuration
func NewZapLogger(cfg config.LoggingConfig) (*ZapLogger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = level
	zapCfg.Sampling = nil
	zapCfg.DisableCaller = !cfg.IncludeCaller
	zapCfg.DisableStacktrace = !cfg.IncludeStacktrace
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.Format == "text" {
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	output := cfg.Output
	if output == "file" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		output = cfg.FilePath
	}
	zapCfg.OutputPaths = []string{output}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &ZapLogger{logger: logger}, nil
}

// NewZapLoggerFrom wraps an existing zap logger
func NewZapLoggerFrom(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{logger: logger}
}

// Log writes an entry at the given level with metadata as structured fields
func (l *ZapLogger) Log(level, message string, metadata map[string]interface{}) {
	fields := make([]zap.Field, 0, len(metadata))
	for key, value := range metadata {
		fields = append(fields, zap.Any(key, value))
	}

	switch level {
	case common.LevelDebug:
		l.logger.Debug(message, fields...)
	case common.LevelWarning:
		l.logger.Warn(message, fields...)
	case common.LevelError:
		l.logger.Error(message, fields...)
	default:
		l.logger.Info(message, fields...)
	}
}

// Zap exposes the underlying zap logger
func (l *ZapLogger) Zap() *zap.Logger {
	return l.logger
}

// Sync flushes buffered entries
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

var _ common.Logger = (*ZapLogger)(nil)
