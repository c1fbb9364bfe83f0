package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel is a thin enum for user friendly level configuration decoupled
// from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger defines the minimal logging interface used throughout the registry.
// Users can provide their own implementation or use the built-in adapters.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger creates a Logger using slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// RegistryLogger wraps slog.Logger adding contextual cloning helpers and
// domain convenience methods for store activity. It is cheap to copy via the
// With* methods.
type RegistryLogger struct {
	logger    *slog.Logger
	level     LogLevel
	context   map[string]any
	component string
	store     string
	scope     string
}

// LoggerConfig configures construction of a RegistryLogger.
type LoggerConfig struct {
	Level       LogLevel
	Format      string // json or text
	Output      io.Writer
	AddSource   bool
	Component   string
	Store       string
	Scope       string
	CustomAttrs map[string]any
}

// DefaultLoggerConfig returns a baseline JSON info level configuration.
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{Level: LogLevelInfo, Format: "json", Output: os.Stdout, AddSource: true, CustomAttrs: map[string]any{}}
}

// NewLogger builds a RegistryLogger from a config (or defaults if nil).
func NewLogger(cfg *LoggerConfig) *RegistryLogger {
	if cfg == nil {
		cfg = DefaultLoggerConfig()
	}
	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level), AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(cfg.Output, opts)
	} else {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	}
	return &RegistryLogger{logger: slog.New(handler), level: cfg.Level, context: map[string]any{}, component: cfg.Component, store: cfg.Store, scope: cfg.Scope}
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *RegistryLogger) clone() *RegistryLogger {
	nl := *l
	nl.context = map[string]any{}
	for k, v := range l.context {
		nl.context[k] = v
	}
	return &nl
}

// WithContext adds a key/value attribute that will be attached to every log entry.
func (l *RegistryLogger) WithContext(key string, value any) *RegistryLogger {
	nl := l.clone()
	nl.context[key] = value
	return nl
}

// WithComponent sets the logical component (store, resolver, façade, etc.).
func (l *RegistryLogger) WithComponent(c string) *RegistryLogger {
	nl := l.clone()
	nl.component = c
	return nl
}

// WithStore attaches a store identifier so colocated registries stay
// distinguishable in shared output.
func (l *RegistryLogger) WithStore(name string) *RegistryLogger {
	nl := l.clone()
	nl.store = name
	return nl
}

// WithScope attaches a scope identifier for entries tied to one loading
// context.
func (l *RegistryLogger) WithScope(id string) *RegistryLogger {
	nl := l.clone()
	nl.scope = id
	return nl
}

func (l *RegistryLogger) buildAttrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, len(l.context)+4)
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	if l.store != "" {
		attrs = append(attrs, slog.String("store", l.store))
	}
	if l.scope != "" {
		attrs = append(attrs, slog.String("scope", l.scope))
	}
	attrs = append(attrs, slog.Time("timestamp", time.Now()))
	for k, v := range l.context {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}

func (l *RegistryLogger) log(level slog.Level, allowed bool, msg string, args ...any) {
	if !allowed {
		return
	}
	attrs := l.buildAttrs()
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// Debug logs at debug level.
func (l *RegistryLogger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, l.level <= LogLevelDebug, msg, args...)
}

// Info logs at info level.
func (l *RegistryLogger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, l.level <= LogLevelInfo, msg, args...)
}

// Warn logs at warn level.
func (l *RegistryLogger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, l.level <= LogLevelWarn, msg, args...)
}

// Error logs at error level.
func (l *RegistryLogger) Error(msg string, args ...any) {
	l.log(slog.LevelError, l.level <= LogLevelError, msg, args...)
}

// LogMutation records a store mutation (add, remove, drop) for one name.
func (l *RegistryLogger) LogMutation(op, name string, err error) {
	attrs := l.buildAttrs()
	attrs = append(attrs, slog.String("op", op), slog.String("name", name))
	level := slog.LevelDebug
	msg := "Registry mutation applied"
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		level = slog.LevelError
		msg = "Registry mutation rejected"
	}
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// LogQueryStats records the shape and latency of a consolidated query.
func (l *RegistryLogger) LogQueryStats(names, payloads int, dur time.Duration) {
	attrs := l.buildAttrs()
	attrs = append(attrs, slog.Int("name_count", names), slog.Int("payload_count", payloads), slog.Duration("duration", dur))
	l.logger.LogAttrs(context.Background(), slog.LevelDebug, "Registry query completed", attrs...)
}

// LogReclamation records that a scope's bucket was pruned, either eagerly via
// Drop or by the garbage-collection backstop.
func (l *RegistryLogger) LogReclamation(eager bool) {
	attrs := l.buildAttrs()
	attrs = append(attrs, slog.Bool("eager", eager))
	l.logger.LogAttrs(context.Background(), slog.LevelDebug, "Scope bucket reclaimed", attrs...)
}

// StartTimer returns a closure that logs the elapsed duration when invoked.
func (l *RegistryLogger) StartTimer(op string) func() {
	start := time.Now()
	return func() { l.Info("Operation completed", "operation", op, "duration", time.Since(start)) }
}

// NewSlogLogger is a convenience constructor building a RegistryLogger with
// the given level, output format ("json" or "text") and source annotation.
func NewSlogLogger(level LogLevel, format string, addSource bool) *RegistryLogger {
	cfg := DefaultLoggerConfig()
	cfg.Level = level
	if format != "" {
		cfg.Format = format
	}
	cfg.AddSource = addSource
	return NewLogger(cfg)
}

// NoOpLogger discards all log messages. Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}
