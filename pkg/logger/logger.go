package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Logger wraps slog.Logger with domain-specific helpers while staying thin.
type Logger struct {
	*slog.Logger
	config Config
}

// Level represents the logging level.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format represents the log output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config holds configuration for the logger.
type Config struct {
	Level      Level  `mapstructure:"level" yaml:"level" json:"level"`
	Format     Format `mapstructure:"format" yaml:"format" json:"format"`
	AddSource  bool   `mapstructure:"add_source" yaml:"add_source" json:"add_source"`
	Component  string `mapstructure:"component" yaml:"component" json:"component"`
	Version    string `mapstructure:"version" yaml:"version" json:"version"`
	TimeFormat string `mapstructure:"time_format" yaml:"time_format" json:"time_format"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Level:      LevelInfo,
		Format:     FormatText,
		AddSource:  false,
		Component:  "peervault",
		Version:    "unknown",
		TimeFormat: time.RFC3339,
	}
}

// New creates a new logger with the provided configuration.
func New(config Config) *Logger {
	level := parseLevel(config.Level)
	handler := newHandler(config, level)

	l := slog.New(handler)
	if config.Component != "" {
		l = l.With(slog.String("component", config.Component))
	}
	if config.Version != "" {
		l = l.With(slog.String("version", config.Version))
	}

	return &Logger{Logger: l, config: config}
}

// NewDevelopment creates a logger optimized for development.
func NewDevelopment(component string) *Logger {
	return New(Config{
		Level:      LevelDebug,
		Format:     FormatText,
		AddSource:  true,
		Component:  component,
		Version:    "dev",
		TimeFormat: time.Kitchen,
	})
}

// NewProduction creates a logger optimized for production.
func NewProduction(component, version string) *Logger {
	return New(Config{
		Level:      LevelInfo,
		Format:     FormatJSON,
		Component:  component,
		Version:    version,
		TimeFormat: time.RFC3339,
	})
}

// contextKey is the private type for logging context keys.
type contextKey string

const (
	// RequestIDKey carries the API request ID through a request's context.
	RequestIDKey contextKey = "request_id"
	// OperationKey carries the current operation name.
	OperationKey contextKey = "operation"
)

// With returns a new logger with additional attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), config: l.config}
}

// WithComponent returns a logger scoped to a sub-component.
func (l *Logger) WithComponent(name string) *Logger {
	cfg := l.config
	cfg.Component = name
	return &Logger{
		Logger: l.Logger.With(slog.String("component", name)),
		config: cfg,
	}
}

// WithContext extracts known logging fields from ctx and returns a scoped logger.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	var attrs []any
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		attrs = append(attrs, slog.String(string(RequestIDKey), id))
	}
	if op, ok := ctx.Value(OperationKey).(string); ok && op != "" {
		attrs = append(attrs, slog.String(string(OperationKey), op))
	}
	if len(attrs) == 0 {
		return l
	}
	return &Logger{Logger: l.Logger.With(attrs...), config: l.config}
}

// ErrorCtx logs an error with context-scoped attributes.
func (l *Logger) ErrorCtx(ctx context.Context, msg string, err error, args ...any) {
	attrs := append([]any{slog.String("error", err.Error())}, args...)
	l.WithContext(ctx).Error(msg, attrs...)
}

// Unwrap returns the underlying slog.Logger for direct access.
func (l *Logger) Unwrap() *slog.Logger {
	return l.Logger
}

// ContextWithRequestID stores a request ID in the context.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func parseLevel(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(config Config, level slog.Level) slog.Handler {
	if config.Format == FormatJSON {
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     level,
			AddSource: config.AddSource,
		})
	}
	return tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		AddSource:  config.AddSource,
		TimeFormat: config.TimeFormat,
	})
}
