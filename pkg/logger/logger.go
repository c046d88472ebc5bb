package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap so callers don't depend on the logging library directly.
type Logger struct {
	*zap.Logger
}

var (
	global *Logger
	once   sync.Once
)

// Init builds the global logger from the given level and format.
// It is safe to call more than once; only the first call takes effect.
func Init(level, format string) *Logger {
	once.Do(func() {
		var zapConfig zap.Config
		if strings.ToLower(level) == "debug" {
			zapConfig = zap.NewDevelopmentConfig()
			zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			zapConfig = zap.NewProductionConfig()
			zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		}

		if err := zapConfig.Level.UnmarshalText([]byte(level)); err != nil {
			fmt.Fprintf(os.Stderr, "invalid LOG_LEVEL %q, defaulting to info: %v\n", level, err)
			zapConfig.Level.SetLevel(zapcore.InfoLevel)
		}

		if strings.ToLower(format) == "console" || strings.ToLower(format) == "text" {
			zapConfig.Encoding = "console"
		} else {
			zapConfig.Encoding = "json"
		}

		zl, err := zapConfig.Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to build zap logger, falling back to production defaults: %v\n", err)
			zl, _ = zap.NewProduction()
		}
		global = &Logger{Logger: zl}
	})
	return global
}

// L returns the global logger, initializing it with defaults if needed.
func L() *Logger {
	if global == nil {
		return Init("info", "json")
	}
	return global
}

// Named returns a logger with an additional name segment.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name)}
}

// With returns a logger with the given structured context attached.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}
