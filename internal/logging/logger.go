// Package logging provides structured logging using zap.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger wraps a zap logger. It satisfies calculation.Logger through the
// printf-style methods and offers key/value methods for request logging.
type ZapLogger struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
}

// ParseLevel parses a log level string
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zap.DebugLevel, nil
	case "INFO", "":
		return zap.InfoLevel, nil
	case "WARN", "WARNING":
		return zap.WarnLevel, nil
	case "ERROR":
		return zap.ErrorLevel, nil
	default:
		return zap.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}

// NewZapLogger creates a console logger writing to stderr so command output on stdout stays clean
func NewZapLogger(levelStr string) (*ZapLogger, error) {
	return NewZapLoggerWithSink(levelStr, zapcore.AddSync(os.Stderr))
}

// NewZapLoggerWithSink creates a console logger writing to sink
func NewZapLoggerWithSink(levelStr string, sink zapcore.WriteSyncer) (*ZapLogger, error) {
	level, err := ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), sink, level)
	return NewFromCore(core), nil
}

// NewFromCore wraps an existing zap core
func NewFromCore(core zapcore.Core) *ZapLogger {
	return newZapLogger(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)))
}

// NewNop returns a logger that discards everything
func NewNop() *ZapLogger {
	return newZapLogger(zap.NewNop())
}

func newZapLogger(l *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: l, sugar: l.Sugar()}
}

func (l *ZapLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *ZapLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *ZapLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *ZapLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

// Info logs msg with alternating key/value pairs
func (l *ZapLogger) Info(msg string, keysAndValues ...any) { l.sugar.Infow(msg, keysAndValues...) }

// Warn logs msg with alternating key/value pairs
func (l *ZapLogger) Warn(msg string, keysAndValues ...any) { l.sugar.Warnw(msg, keysAndValues...) }

// Error logs msg with alternating key/value pairs
func (l *ZapLogger) Error(msg string, keysAndValues ...any) { l.sugar.Errorw(msg, keysAndValues...) }

// With returns a child logger carrying the given field
func (l *ZapLogger) With(key string, value any) *ZapLogger {
	return newZapLogger(l.logger.With(zap.Any(key, value)))
}

// Sync flushes any buffered log entries
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
