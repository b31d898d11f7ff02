// Package log builds the process logger: a slog.Logger writing JSON or
// human-readable terminal lines. Correlation and request IDs travel in
// the context and are stamped onto every record logged through the
// context-aware slog methods.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/assistant-mcp/knowd/internal/config"
)

// ContextKey is the type of the context keys this package stores IDs
// under.
type ContextKey string

// Context keys for logging.
const (
	CorrelationIDKey ContextKey = "correlation_id"
	RequestIDKey     ContextKey = "request_id"
)

// WithCorrelationID stores a correlation ID in the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// WithRequestID stores a request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// CorrelationID returns the correlation ID stored in the context, or
// the empty string.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(CorrelationIDKey).(string)
	return id
}

// RequestID returns the request ID stored in the context, or the empty
// string.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Logger bundles a slog.Logger with the handler it was built on.
type Logger struct {
	handler slog.Handler
	logger  *slog.Logger
}

// NewLogger builds a Logger on stdout from the configured format and
// level.
func NewLogger(cfg config.AppConfig) *Logger {
	return NewLoggerWithWriter(os.Stdout, cfg.LogFormat(), cfg.LogLevel())
}

// NewLoggerWithWriter builds a Logger writing to w.
func NewLoggerWithWriter(w io.Writer, format config.LogFormat, level string) *Logger {
	handler := contextHandler{inner: newHandler(w, format, parseLevel(level))}
	return &Logger{
		handler: handler,
		logger:  slog.New(handler),
	}
}

func newHandler(w io.Writer, format config.LogFormat, level slog.Level) slog.Handler {
	if format == config.LogFormatJSON {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return newTermHandler(w, level)
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Slog returns the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

// Handler returns the underlying slog.Handler.
func (l *Logger) Handler() slog.Handler {
	return l.handler
}

// With returns a Logger that adds the given attributes to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		handler: l.handler,
		logger:  l.logger.With(args...),
	}
}

// SetDefault installs this logger as the process-wide slog default.
func (l *Logger) SetDefault() {
	slog.SetDefault(l.logger)
}

var defaultLogger = NewLoggerWithWriter(os.Stdout, config.LogFormatPretty, "INFO")

// Default returns the package-level default logger.
func Default() *Logger {
	return defaultLogger
}

// SetDefaultLogger replaces the package-level default logger and the
// slog default.
func SetDefaultLogger(l *Logger) {
	defaultLogger = l
	l.SetDefault()
}

// Configure builds the configured logger on stdout and installs it as
// the default.
func Configure(cfg config.AppConfig) *Logger {
	l := NewLogger(cfg)
	SetDefaultLogger(l)
	return l
}

// ConfigureStdio builds the configured logger on stderr and installs it
// as the default. The stdio transport owns stdout for protocol frames.
func ConfigureStdio(cfg config.AppConfig) *Logger {
	l := NewLoggerWithWriter(os.Stderr, cfg.LogFormat(), cfg.LogLevel())
	SetDefaultLogger(l)
	return l
}

// contextHandler stamps the correlation and request IDs stored in the
// context onto each record before delegating to the wrapped handler.
type contextHandler struct {
	inner slog.Handler
}

// Enabled reports whether the wrapped handler handles the given level.
func (h contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle appends any context IDs to the record and passes it on.
func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	corrID := CorrelationID(ctx)
	reqID := RequestID(ctx)
	if corrID == "" && reqID == "" {
		return h.inner.Handle(ctx, r)
	}

	stamped := r.Clone()
	if corrID != "" {
		stamped.AddAttrs(slog.String(string(CorrelationIDKey), corrID))
	}
	if reqID != "" {
		stamped.AddAttrs(slog.String(string(RequestIDKey), reqID))
	}
	return h.inner.Handle(ctx, stamped)
}

// WithAttrs returns a handler whose wrapped handler carries the extra
// attributes.
func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup returns a handler whose wrapped handler opens the group.
func (h contextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return contextHandler{inner: h.inner.WithGroup(name)}
}
