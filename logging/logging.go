// Package logging contains the structured logging used throughout the VIO
// front-end: a small wrapper over zap so call sites depend on an interface
// instead of a concrete logger implementation.
package logging

import (
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Logger is the subset of zap's sugared API the front-end depends on.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Named(name string) Logger
}

type impl struct {
	*zap.SugaredLogger
}

func (l *impl) Named(name string) Logger {
	return &impl{l.SugaredLogger.Named(name)}
}

var (
	globalMu     sync.RWMutex
	globalLogger = NewLogger("startup")
)

// ReplaceGlobal replaces the package-level global logger.
func ReplaceGlobal(logger Logger) {
	globalMu.Lock()
	globalLogger = logger
	globalMu.Unlock()
}

// Global returns the package-level global logger.
func Global() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

func newLoggerConfig() zap.Config {
	cfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	return cfg
}

// NewLogger returns a new named logger that writes Info+ logs to stdout.
func NewLogger(name string) Logger {
	cfg := newLoggerConfig()
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return &impl{l.Named(name).Sugar()}
}

// NewTestLogger returns a logger suitable for use inside *testing.T, writing
// through t.Log so failures show contextual output only for failing tests.
func NewTestLogger(tb testing.TB) Logger {
	return &impl{zaptest.NewLogger(tb).Sugar()}
}
