// Package logger builds the zap logger used across modinv and carries trace
// ids through context.Context.
package logger

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kbolino/modinv/config"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// TraceIDKey is the context key for trace ID
	TraceIDKey contextKey = "trace_id"
)

// Logger wraps zap.Logger with trace id helpers.
type Logger struct {
	*zap.Logger
	file *os.File
}

// NewLogger creates a logger from cfg. Level is one of debug, info, warn,
// error or fatal; Format is json or console; Output is stdout, stderr or
// file, the latter appending to FilePath.
func NewLogger(cfg *config.LoggingConfig) (*Logger, error) {
	level, err := parseLogLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	switch cfg.Format {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console", "text", "":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	var writeSyncer zapcore.WriteSyncer
	var file *os.File
	switch cfg.Output {
	case "file":
		file, err = os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		writeSyncer = zapcore.AddSync(file)
	case "stdout":
		writeSyncer = zapcore.Lock(os.Stdout)
	case "stderr", "":
		writeSyncer = zapcore.Lock(os.Stderr)
	default:
		return nil, fmt.Errorf("unknown log output %q", cfg.Output)
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)
	zapLogger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return &Logger{Logger: zapLogger, file: file}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// WithTraceID returns a new logger with the trace ID field added.
func (l *Logger) WithTraceID(traceID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(zap.String("trace_id", traceID)),
	}
}

// WithContext extracts the trace ID from the context and returns a logger with it.
// If no trace ID is found in the context, returns the original logger.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
		return l.WithTraceID(traceID)
	}
	return l
}

func parseLogLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "fatal":
		return zapcore.FatalLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// Close flushes buffered entries and closes the log file, if any.
func (l *Logger) Close() error {
	// Sync on a terminal stdout/stderr fails with EINVAL on some platforms
	_ = l.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
