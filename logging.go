package kmc

import (
	"sync"

	"go.uber.org/zap"
)

// Field is a single structured logging field, shaped after a key and a
// typed value. Using a concrete type instead of variadic any/any pairs
// keeps call sites type-checked at compile time.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field  { return Field{Key: key, Value: value} }
func Int(key string, value int) Field { return Field{Key: key, Value: value} }
func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}
func Err(err error) Field { return Field{Key: "error", Value: err} }
func Any(key string, value any) Field { return Field{Key: key, Value: value} }

// Logger is the ambient logging interface used throughout the engine. The
// core never performs I/O itself; a caller wires in a real implementation
// (or accepts the silent NopLogger default).
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	With(fields ...Field) Logger
}

func toZapFields(fields []Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			out = append(out, zap.String(f.Key, v))
		case int:
			out = append(out, zap.Int(f.Key, v))
		case float64:
			out = append(out, zap.Float64(f.Key, v))
		case error:
			out = append(out, zap.Error(v))
		default:
			out = append(out, zap.Any(f.Key, v))
		}
	}
	return out
}

// zapLogger backs Logger with a *zap.SugaredLogger so the engine can keep
// printf-style call sites while still emitting structured fields attached
// via With.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger builds a production zap configuration and wraps it as a Logger.
func NewLogger() (Logger, error) {
	base, err := zap.NewProduction()
	if err != nil {
		return nil, wrapError(err, CodeUnknown, "failed to build logger")
	}
	return &zapLogger{sugar: base.Sugar()}, nil
}

// NewLoggerFromCore wraps a caller-supplied *zap.Logger, e.g. one built
// with a custom zapcore for test capture.
func NewLoggerFromCore(z *zap.Logger) Logger {
	return &zapLogger{sugar: z.Sugar()}
}

func (l *zapLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *zapLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *zapLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *zapLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{sugar: l.sugar.With(toZapFieldsAsArgs(fields)...)}
}

func toZapFieldsAsArgs(fields []Field) []any {
	zf := toZapFields(fields)
	args := make([]any, len(zf))
	for i, f := range zf {
		args[i] = f
	}
	return args
}

// nopLogger is the silent default; the engine never panics or blocks on
// logging even if a caller never wires one in.
type nopLogger struct{}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}
func (nopLogger) With(fields ...Field) Logger       { return nopLogger{} }

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = NewNopLogger()
)

// SetDefault installs the package-level default logger used by any
// component constructed without an explicit Logger.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if l == nil {
		l = NewNopLogger()
	}
	defaultLogger = l
}

// Default returns the package-level default logger.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}
