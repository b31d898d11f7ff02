package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// sqlLogLimit caps the SQL text carried on a log record.
	sqlLogLimit = 200
	// slowQueryThreshold marks queries worth a warning even when debug
	// logging is off.
	slowQueryThreshold = 200 * time.Millisecond
)

// queryLogger adapts GORM's logger.Interface onto the process slog
// default. Level filtering is slog's: when debug is off the SQL
// formatting callback never runs.
type queryLogger struct{}

var _ logger.Interface = queryLogger{}

// LogMode is a no-op; slog controls the effective level.
func (queryLogger) LogMode(logger.LogLevel) logger.Interface { return queryLogger{} }

func (queryLogger) Info(ctx context.Context, msg string, args ...any) {
	slog.Default().InfoContext(ctx, fmt.Sprintf(msg, args...))
}

func (queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	slog.Default().WarnContext(ctx, fmt.Sprintf(msg, args...))
}

func (queryLogger) Error(ctx context.Context, msg string, args ...any) {
	slog.Default().ErrorContext(ctx, fmt.Sprintf(msg, args...))
}

// Trace runs after every SQL operation. Failed queries log at error
// level, slow ones at warn, the rest at debug. gorm.ErrRecordNotFound
// is the ordinary "no rows" outcome of First and is not a failure.
func (queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	l := slog.Default()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.ErrorContext(ctx, "query failed", queryAttrs(sql, rows, elapsed, slog.Any("error", err))...)
	case elapsed >= slowQueryThreshold && l.Enabled(ctx, slog.LevelWarn):
		sql, rows := fc()
		l.WarnContext(ctx, "slow query", queryAttrs(sql, rows, elapsed)...)
	case l.Enabled(ctx, slog.LevelDebug):
		sql, rows := fc()
		l.DebugContext(ctx, "query", queryAttrs(sql, rows, elapsed)...)
	}
}

func queryAttrs(sql string, rows int64, elapsed time.Duration, extra ...any) []any {
	attrs := []any{
		slog.String("sql", clipSQL(sql)),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}
	return append(attrs, extra...)
}

func clipSQL(sql string) string {
	if len(sql) <= sqlLogLimit {
		return sql
	}
	return fmt.Sprintf("%s... (%d bytes)", sql[:sqlLogLimit], len(sql))
}
