// Package logging implements ports.Logger on top of zap.
package logging

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/felixgeelhaar/winprep/internal/ports"
)

// ZapLogger adapts a zap.Logger to ports.Logger. Loggers derived with With
// share the level of their parent.
type ZapLogger struct {
	zap   *zap.Logger
	level zap.AtomicLevel
}

// Option configures a ZapLogger.
type Option func(*options)

type options struct {
	out       io.Writer
	level     ports.Level
	json      bool
	timestamp bool
}

// WithOutput sets the output writer (default: os.Stderr).
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithLevel sets the minimum log level (default: Info).
func WithLevel(level ports.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithJSONFormat switches from the console encoder to JSON.
func WithJSONFormat(enabled bool) Option {
	return func(o *options) {
		o.json = enabled
	}
}

// WithTimestamp includes a timestamp in every entry (default: true).
func WithTimestamp(enabled bool) Option {
	return func(o *options) {
		o.timestamp = enabled
	}
}

// New creates a ZapLogger.
func New(opts ...Option) *ZapLogger {
	o := options{
		out:       os.Stderr,
		level:     ports.LevelInfo,
		timestamp: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.CallerKey = zapcore.OmitKey
	if !o.timestamp {
		encCfg.TimeKey = zapcore.OmitKey
	}

	var enc zapcore.Encoder
	if o.json {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	level := zap.NewAtomicLevelAt(toZapLevel(o.level))
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(o.out)), level)

	return &ZapLogger{zap: zap.New(core), level: level}
}

// NewNop returns a logger that discards everything.
func NewNop() *ZapLogger {
	return &ZapLogger{zap: zap.NewNop(), level: zap.NewAtomicLevelAt(zapcore.InfoLevel)}
}

// Debug logs a debug message.
func (l *ZapLogger) Debug(_ context.Context, msg string, fields ...ports.Field) {
	l.zap.Debug(msg, toZapFields(fields)...)
}

// Info logs an informational message.
func (l *ZapLogger) Info(_ context.Context, msg string, fields ...ports.Field) {
	l.zap.Info(msg, toZapFields(fields)...)
}

// Warn logs a warning message.
func (l *ZapLogger) Warn(_ context.Context, msg string, fields ...ports.Field) {
	l.zap.Warn(msg, toZapFields(fields)...)
}

// Error logs an error message.
func (l *ZapLogger) Error(_ context.Context, msg string, fields ...ports.Field) {
	l.zap.Error(msg, toZapFields(fields)...)
}

// With returns a child logger that adds fields to every entry.
func (l *ZapLogger) With(fields ...ports.Field) ports.Logger {
	return &ZapLogger{zap: l.zap.With(toZapFields(fields)...), level: l.level}
}

// Level returns the minimum log level.
func (l *ZapLogger) Level() ports.Level {
	return fromZapLevel(l.level.Level())
}

// SetLevel sets the minimum log level.
func (l *ZapLogger) SetLevel(level ports.Level) {
	l.level.SetLevel(toZapLevel(level))
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.zap.Sync()
}

func toZapFields(fields []ports.Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		if err, ok := f.Value.(error); ok {
			out[i] = zap.NamedError(f.Key, err)
			continue
		}
		out[i] = zap.Any(f.Key, f.Value)
	}
	return out
}

// ports.Level shares zapcore's numbering from debug to error.
func toZapLevel(level ports.Level) zapcore.Level {
	return zapcore.Level(min(max(level, ports.LevelDebug), ports.LevelError))
}

func fromZapLevel(level zapcore.Level) ports.Level {
	return min(max(ports.Level(level), ports.LevelDebug), ports.LevelError)
}

// Ensure ZapLogger implements ports.Logger.
var _ ports.Logger = (*ZapLogger)(nil)
