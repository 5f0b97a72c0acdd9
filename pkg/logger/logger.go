// Package logger wraps zap with the small surface the rest of the
// application needs: leveled structured logging to either the console
// (--console runs) or a log file (headless runs).
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field aliases so callers do not import zap directly.
type Field = zapcore.Field

var (
	String   = zap.String
	Int      = zap.Int
	Uint64   = zap.Uint64
	Float64  = zap.Float64
	Bool     = zap.Bool
	Duration = zap.Duration
	Error    = zap.Error
	Any      = zap.Any
)

// Logger is a thin wrapper around zap.Logger.
type Logger struct {
	*zap.Logger
}

// Config selects the log level and destination.
type Config struct {
	Level   string // debug, info, warn, error
	Console bool   // true: stderr console encoder; false: file sink
	File    string // log file path for headless runs
}

// New builds a logger for the given configuration. Headless runs append to
// cfg.File; if the file cannot be opened the logger is a no-op rather than a
// startup failure.
func New(cfg Config) (*Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	var core zapcore.Core
	if cfg.Console {
		core = zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderCfg),
			zapcore.AddSync(os.Stderr),
			level,
		)
	} else {
		sink, err := openFileSink(cfg.File)
		if err != nil {
			return &Logger{Logger: zap.NewNop()}, nil
		}
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			sink,
			level,
		)
	}

	return &Logger{Logger: zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))}, nil
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Named returns a logger with the given name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name)}
}

// With returns a logger with the given fields attached.
func (l *Logger) With(fields ...zapcore.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}

func openFileSink(path string) (zapcore.WriteSyncer, error) {
	if path == "" {
		return nil, fmt.Errorf("no log file configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(f), nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unsupported log level: %s", level)
	}
}
