package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConstants(t *testing.T) {
	if DefaultHost != "0.0.0.0" {
		t.Errorf("DefaultHost = %v, want '0.0.0.0'", DefaultHost)
	}
	if DefaultPort != 8000 {
		t.Errorf("DefaultPort = %v, want 8000", DefaultPort)
	}
	if DefaultLogLevel != "INFO" {
		t.Errorf("DefaultLogLevel = %v, want 'INFO'", DefaultLogLevel)
	}
	if DefaultKnowledgeDir != "./knowledge_base" {
		t.Errorf("DefaultKnowledgeDir = %v, want './knowledge_base'", DefaultKnowledgeDir)
	}
	if DefaultTimezone != "Asia/Shanghai" {
		t.Errorf("DefaultTimezone = %v, want 'Asia/Shanghai'", DefaultTimezone)
	}
	if DefaultContextLines != 2 {
		t.Errorf("DefaultContextLines = %v, want 2", DefaultContextLines)
	}
	if DefaultResultsPerFile != 5 {
		t.Errorf("DefaultResultsPerFile = %v, want 5", DefaultResultsPerFile)
	}
	if DefaultMaxFileResults != 10 {
		t.Errorf("DefaultMaxFileResults = %v, want 10", DefaultMaxFileResults)
	}
	if DefaultNotesFolder != "Notes" {
		t.Errorf("DefaultNotesFolder = %v, want 'Notes'", DefaultNotesFolder)
	}
	if DefaultScriptTimeout != 30*time.Second {
		t.Errorf("DefaultScriptTimeout = %v, want 30s", DefaultScriptTimeout)
	}
}

func TestDefaultWorkers(t *testing.T) {
	if DefaultWorkers() < 1 {
		t.Errorf("DefaultWorkers() = %v, want >= 1", DefaultWorkers())
	}
}

func TestSearchConfig(t *testing.T) {
	cfg := NewSearchConfig()

	if cfg.ContextLines() != DefaultContextLines {
		t.Errorf("ContextLines() = %v, want %v", cfg.ContextLines(), DefaultContextLines)
	}
	if cfg.ResultsPerFile() != DefaultResultsPerFile {
		t.Errorf("ResultsPerFile() = %v, want %v", cfg.ResultsPerFile(), DefaultResultsPerFile)
	}
	if cfg.MaxFileResults() != DefaultMaxFileResults {
		t.Errorf("MaxFileResults() = %v, want %v", cfg.MaxFileResults(), DefaultMaxFileResults)
	}

	cfg = cfg.WithContextLines(0).WithResultsPerFile(3).WithMaxFileResults(25)
	if cfg.ContextLines() != 0 {
		t.Errorf("ContextLines() = %v, want 0", cfg.ContextLines())
	}
	if cfg.ResultsPerFile() != 3 {
		t.Errorf("ResultsPerFile() = %v, want 3", cfg.ResultsPerFile())
	}
	if cfg.MaxFileResults() != 25 {
		t.Errorf("MaxFileResults() = %v, want 25", cfg.MaxFileResults())
	}

	// Negative window sizes and non-positive caps are ignored.
	cfg = cfg.WithContextLines(-1).WithResultsPerFile(0).WithMaxFileResults(-5)
	if cfg.ContextLines() != 0 || cfg.ResultsPerFile() != 3 || cfg.MaxFileResults() != 25 {
		t.Errorf("invalid values should not override: %+v", cfg)
	}
}

func TestAutomationConfig(t *testing.T) {
	cfg := NewAutomationConfig()

	if cfg.NotesFolder() != DefaultNotesFolder {
		t.Errorf("NotesFolder() = %v, want %v", cfg.NotesFolder(), DefaultNotesFolder)
	}
	if cfg.ScriptTimeout() != DefaultScriptTimeout {
		t.Errorf("ScriptTimeout() = %v, want %v", cfg.ScriptTimeout(), DefaultScriptTimeout)
	}

	cfg = cfg.WithNotesFolder("Work").WithScriptTimeout(10 * time.Second)
	if cfg.NotesFolder() != "Work" {
		t.Errorf("NotesFolder() = %v, want 'Work'", cfg.NotesFolder())
	}
	if cfg.ScriptTimeout() != 10*time.Second {
		t.Errorf("ScriptTimeout() = %v, want 10s", cfg.ScriptTimeout())
	}
}

func TestOrdersConfig(t *testing.T) {
	cfg := NewOrdersConfig()

	if !cfg.Seed() {
		t.Error("Seed() should be true by default")
	}

	cfg = cfg.WithSeed(false)
	if cfg.Seed() {
		t.Error("Seed() should be false after WithSeed(false)")
	}
}

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	if cfg.Host() != DefaultHost {
		t.Errorf("Host() = %v, want %v", cfg.Host(), DefaultHost)
	}
	if cfg.Port() != DefaultPort {
		t.Errorf("Port() = %v, want %v", cfg.Port(), DefaultPort)
	}
	if cfg.Addr() != "0.0.0.0:8000" {
		t.Errorf("Addr() = %v, want '0.0.0.0:8000'", cfg.Addr())
	}
	if cfg.KnowledgeDir() != DefaultKnowledgeDir {
		t.Errorf("KnowledgeDir() = %v, want %v", cfg.KnowledgeDir(), DefaultKnowledgeDir)
	}
	if cfg.Timezone() != DefaultTimezone {
		t.Errorf("Timezone() = %v, want %v", cfg.Timezone(), DefaultTimezone)
	}
	if !strings.HasPrefix(cfg.DBURL(), "sqlite:///") {
		t.Errorf("DBURL() = %v, want sqlite:/// prefix", cfg.DBURL())
	}
	if !strings.HasSuffix(cfg.DBURL(), "knowd.db") {
		t.Errorf("DBURL() = %v, want knowd.db suffix", cfg.DBURL())
	}
	if cfg.WorkerCount() < 1 {
		t.Errorf("WorkerCount() = %v, want >= 1", cfg.WorkerCount())
	}
}

func TestAppConfig_Options(t *testing.T) {
	cfg := NewAppConfigWithOptions(
		WithHost("127.0.0.1"),
		WithPort(9000),
		WithKnowledgeDir("/srv/kb"),
		WithTimezone("UTC"),
		WithWorkerCount(4),
		WithLogFormat(LogFormatJSON),
	)

	if cfg.Host() != "127.0.0.1" {
		t.Errorf("Host() = %v, want '127.0.0.1'", cfg.Host())
	}
	if cfg.Port() != 9000 {
		t.Errorf("Port() = %v, want 9000", cfg.Port())
	}
	if cfg.KnowledgeDir() != "/srv/kb" {
		t.Errorf("KnowledgeDir() = %v, want '/srv/kb'", cfg.KnowledgeDir())
	}
	if cfg.Timezone() != "UTC" {
		t.Errorf("Timezone() = %v, want 'UTC'", cfg.Timezone())
	}
	if cfg.WorkerCount() != 4 {
		t.Errorf("WorkerCount() = %v, want 4", cfg.WorkerCount())
	}
	if cfg.LogFormat() != LogFormatJSON {
		t.Errorf("LogFormat() = %v, want json", cfg.LogFormat())
	}
}

func TestAppConfig_WithDataDir_MovesDefaultDB(t *testing.T) {
	cfg := NewAppConfig().Apply(WithDataDir("/custom/dir"))

	if cfg.DataDir() != "/custom/dir" {
		t.Errorf("DataDir() = %v, want '/custom/dir'", cfg.DataDir())
	}
	if !strings.Contains(cfg.DBURL(), "/custom/dir") {
		t.Errorf("DBURL() = %v, want it under /custom/dir", cfg.DBURL())
	}

	// An explicit DB URL is not rewritten by a later data dir change.
	cfg = cfg.Apply(WithDBURL("postgres://u:p@localhost/orders"), WithDataDir("/other"))
	if cfg.DBURL() != "postgres://u:p@localhost/orders" {
		t.Errorf("DBURL() = %v, want explicit postgres URL preserved", cfg.DBURL())
	}
}

func TestAppConfig_Apply_DoesNotMutateReceiver(t *testing.T) {
	base := NewAppConfig()
	modified := base.Apply(WithPort(9999))

	if base.Port() != DefaultPort {
		t.Errorf("base Port() = %v, want %v", base.Port(), DefaultPort)
	}
	if modified.Port() != 9999 {
		t.Errorf("modified Port() = %v, want 9999", modified.Port())
	}
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"*"}},
		{"*", []string{"*"}},
		{"http://a.com, http://b.com", []string{"http://a.com", "http://b.com"}},
		{" , ", []string{"*"}},
	}

	for _, tt := range tests {
		got := ParseOrigins(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("ParseOrigins(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseOrigins(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}
