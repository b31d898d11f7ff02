package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/assistant-mcp/knowd/internal/config"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("line %q is not valid JSON: %v", line, err)
		}
		records = append(records, record)
	}
	return records
}

func TestNewLogger(t *testing.T) {
	cfg := config.NewAppConfigWithOptions(
		config.WithLogLevel("INFO"),
		config.WithLogFormat(config.LogFormatPretty),
	)

	logger := NewLogger(cfg)
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}
	if logger.Slog() == nil {
		t.Error("Slog() returned nil")
	}
	if logger.Handler() == nil {
		t.Error("Handler() returned nil")
	}
}

func TestNewLoggerWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "DEBUG")

	logger.Slog().Debug("debug message")
	logger.Slog().Info("info message", slog.String("component", "api"))
	logger.Slog().Warn("warn message")
	logger.Slog().Error("error message")

	records := decodeLines(t, &buf)
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if records[1]["msg"] != "info message" {
		t.Errorf("msg = %v, want info message", records[1]["msg"])
	}
	if records[1]["component"] != "api" {
		t.Errorf("component = %v, want api", records[1]["component"])
	}
}

func TestNewLoggerWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "ERROR")

	logger.Slog().Info("dropped")
	logger.Slog().Error("kept")

	records := decodeLines(t, &buf)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["msg"] != "kept" {
		t.Errorf("msg = %v, want kept", records[0]["msg"])
	}
}

func TestNewLoggerWithWriter_PrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "INFO")

	logger.Slog().Info("server started", slog.Int("port", 8080))

	output := buf.String()
	if !strings.Contains(output, "server started") {
		t.Errorf("output %q missing message", output)
	}
	if !strings.Contains(output, "port") {
		t.Errorf("output %q missing attr key", output)
	}
	if json.Valid([]byte(strings.TrimSpace(output))) {
		t.Error("pretty format should not produce JSON")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	scoped := logger.With("service", "orders")
	scoped.Slog().Info("first")
	scoped.Slog().Info("second")

	records := decodeLines(t, &buf)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for i, record := range records {
		if record["service"] != "orders" {
			t.Errorf("record %d service = %v, want orders", i, record["service"])
		}
	}
}

func TestContextIDsStampedOnRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	ctx := WithCorrelationID(context.Background(), "corr-123")
	ctx = WithRequestID(ctx, "req-456")
	logger.Slog().InfoContext(ctx, "handled")

	records := decodeLines(t, &buf)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["correlation_id"] != "corr-123" {
		t.Errorf("correlation_id = %v, want corr-123", records[0]["correlation_id"])
	}
	if records[0]["request_id"] != "req-456" {
		t.Errorf("request_id = %v, want req-456", records[0]["request_id"])
	}
}

func TestContextIDsAbsentWithoutValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.Slog().InfoContext(context.Background(), "handled")

	records := decodeLines(t, &buf)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if _, ok := records[0]["correlation_id"]; ok {
		t.Error("correlation_id should be absent")
	}
	if _, ok := records[0]["request_id"]; ok {
		t.Error("request_id should be absent")
	}
}

func TestContextIDsFlowThroughDerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	ctx := WithRequestID(context.Background(), "req-789")
	logger.Slog().With("component", "http").InfoContext(ctx, "handled")

	records := decodeLines(t, &buf)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["request_id"] != "req-789" {
		t.Errorf("request_id = %v, want req-789", records[0]["request_id"])
	}
	if records[0]["component"] != "http" {
		t.Errorf("component = %v, want http", records[0]["component"])
	}
}

func TestCorrelationIDHelpers(t *testing.T) {
	ctx := context.Background()

	if got := CorrelationID(ctx); got != "" {
		t.Errorf("CorrelationID on empty context = %q, want empty", got)
	}
	if got := RequestID(ctx); got != "" {
		t.Errorf("RequestID on empty context = %q, want empty", got)
	}

	ctx = WithCorrelationID(ctx, "corr-1")
	ctx = WithRequestID(ctx, "req-1")
	if got := CorrelationID(ctx); got != "corr-1" {
		t.Errorf("CorrelationID = %q, want corr-1", got)
	}
	if got := RequestID(ctx); got != "req-1" {
		t.Errorf("RequestID = %q, want req-1", got)
	}
}

func TestSetDefaultLogger(t *testing.T) {
	prevDefault := defaultLogger
	prevSlog := slog.Default()
	t.Cleanup(func() {
		defaultLogger = prevDefault
		slog.SetDefault(prevSlog)
	})

	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")
	SetDefaultLogger(logger)

	if Default() != logger {
		t.Error("Default() should return the installed logger")
	}

	slog.Info("through default")
	records := decodeLines(t, &buf)
	if len(records) != 1 || records[0]["msg"] != "through default" {
		t.Errorf("slog default did not route to installed logger: %v", records)
	}
}
