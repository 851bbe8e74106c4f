package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger. A nil *Logger is valid and discards everything,
// which keeps services usable in tests without wiring a logger.
type Logger struct {
	*zap.SugaredLogger
}

const defaultZapLevel = zapcore.InfoLevel

func toZapLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

// newConsoleCore writes human-readable lines to stdout; the device console is
// usually a serial port so timestamps are left to the log files.
func newConsoleCore(level zapcore.Level) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.NameKey = "component"

	encoder := zapcore.NewConsoleEncoder(cfg)
	ws := zapcore.Lock(os.Stdout)
	return zapcore.NewCore(encoder, zapcore.AddSync(ws), zap.NewAtomicLevelAt(level))
}

func newZapLogger(levelStr string) *Logger {
	core := newConsoleCore(toZapLevel(levelStr))
	return &Logger{
		SugaredLogger: zap.New(core).Sugar(),
	}
}

// Named returns a child logger tagged with the component name.
func (l *Logger) Named(name string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{SugaredLogger: l.SugaredLogger.Named(name)}
}

// Infow logs at info level; safe on a nil receiver.
func (l *Logger) Infow(msg string, kv ...interface{}) {
	if l == nil {
		return
	}
	l.SugaredLogger.Infow(msg, kv...)
}

// Warnw logs at warn level; safe on a nil receiver.
func (l *Logger) Warnw(msg string, kv ...interface{}) {
	if l == nil {
		return
	}
	l.SugaredLogger.Warnw(msg, kv...)
}

// Errorw logs at error level; safe on a nil receiver.
func (l *Logger) Errorw(msg string, kv ...interface{}) {
	if l == nil {
		return
	}
	l.SugaredLogger.Errorw(msg, kv...)
}

// Debugw logs at debug level; safe on a nil receiver.
func (l *Logger) Debugw(msg string, kv ...interface{}) {
	if l == nil {
		return
	}
	l.SugaredLogger.Debugw(msg, kv...)
}
