package log

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	escReset   = "\x1b[0m"
	escFaint   = "\x1b[2m"
	escMagenta = "\x1b[35m"
	escBlue    = "\x1b[34m"
	escYellow  = "\x1b[33m"
	escRed     = "\x1b[31m"
)

const termTimeLayout = "Jan 02 15:04:05.000"

func levelTag(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return escMagenta + "DEBUG" + escReset
	case level < slog.LevelWarn:
		return escBlue + "INFO " + escReset
	case level < slog.LevelError:
		return escYellow + "WARN " + escReset
	default:
		return escRed + "ERROR" + escReset
	}
}

// termHandler renders records as single human-readable lines with ANSI
// colors, for a developer watching the process. Machine consumers get
// the JSON handler instead.
type termHandler struct {
	w     io.Writer
	mu    *sync.Mutex
	level slog.Leveler

	// prefix is the dot-joined path of open groups, empty at the root.
	prefix string
	// preformatted holds attrs bound via WithAttrs, rendered once.
	preformatted string
}

func newTermHandler(w io.Writer, level slog.Leveler) *termHandler {
	return &termHandler{w: w, mu: &sync.Mutex{}, level: level}
}

// Enabled reports whether records at the given level are emitted.
func (h *termHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats the record as one line and writes it under the shared
// lock.
func (h *termHandler) Handle(_ context.Context, r slog.Record) error {
	var line strings.Builder
	line.WriteString(escFaint + r.Time.Format(termTimeLayout) + escReset)
	line.WriteByte(' ')
	line.WriteString(levelTag(r.Level))
	line.WriteByte(' ')
	line.WriteString(r.Message)
	line.WriteString(h.preformatted)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&line, h.prefix, a)
		return true
	})
	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line.String())
	return err
}

// WithAttrs renders the attrs once and carries them on every record.
func (h *termHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var sb strings.Builder
	for _, a := range attrs {
		appendAttr(&sb, h.prefix, a)
	}
	next := *h
	next.preformatted = h.preformatted + sb.String()
	return &next
}

// WithGroup extends the dotted key prefix of subsequent attrs.
func (h *termHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = joinPrefix(h.prefix, name)
	return &next
}

func joinPrefix(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// appendAttr renders one attribute as " key=value", flattening groups
// into dotted keys.
func appendAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = joinPrefix(prefix, a.Key)
		}
		for _, member := range a.Value.Group() {
			appendAttr(sb, groupPrefix, member)
		}
		return
	}
	sb.WriteByte(' ')
	sb.WriteString(escFaint + joinPrefix(prefix, a.Key) + "=" + escReset)
	sb.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindDuration:
		return v.Duration().String()
	default:
		return quoteIfNeeded(v.String())
	}
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
