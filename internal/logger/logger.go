package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *zap.Logger
	once         sync.Once
)

// Initialize sets up the global logger. env "prod" gets JSON output,
// anything else gets the console encoder. Safe to call more than once.
func Initialize(env string) error {
	var initErr error
	once.Do(func() {
		var cfg zap.Config
		if env == "prod" {
			cfg = zap.NewProductionConfig()
			cfg.EncoderConfig.TimeKey = "timestamp"
			cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		} else {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
			if parsed, err := zapcore.ParseLevel(lvl); err == nil {
				cfg.Level = zap.NewAtomicLevelAt(parsed)
			}
		}

		globalLogger, initErr = cfg.Build(zap.AddCallerSkip(0))
	})
	return initErr
}

// Get returns the global logger, falling back to a no-op logger when
// Initialize has not run (keeps tests quiet).
func Get() *zap.Logger {
	if globalLogger == nil {
		return zap.NewNop()
	}
	return globalLogger
}

func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}
