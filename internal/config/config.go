// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 8000
	DefaultLogLevel       = "INFO"
	DefaultKnowledgeDir   = "./knowledge_base"
	DefaultTimezone       = "Asia/Shanghai"
	DefaultContextLines   = 2
	DefaultResultsPerFile = 5
	DefaultMaxFileResults = 10
	DefaultNotesFolder    = "Notes"
	DefaultScriptTimeout  = 30 * time.Second
	DefaultCORSOrigins    = "*"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// SearchConfig holds the default knobs of the knowledge search pipeline.
// Per-request values override these.
type SearchConfig struct {
	contextLines   int
	resultsPerFile int
	maxFileResults int
}

// NewSearchConfig creates a SearchConfig with defaults.
func NewSearchConfig() SearchConfig {
	return SearchConfig{
		contextLines:   DefaultContextLines,
		resultsPerFile: DefaultResultsPerFile,
		maxFileResults: DefaultMaxFileResults,
	}
}

// ContextLines returns the default number of context lines around a match.
func (s SearchConfig) ContextLines() int { return s.contextLines }

// ResultsPerFile returns the default per-file match cap.
func (s SearchConfig) ResultsPerFile() int { return s.resultsPerFile }

// MaxFileResults returns the default global cap for file-level search.
func (s SearchConfig) MaxFileResults() int { return s.maxFileResults }

// WithContextLines returns a new config with the given context window size.
func (s SearchConfig) WithContextLines(n int) SearchConfig {
	if n >= 0 {
		s.contextLines = n
	}
	return s
}

// WithResultsPerFile returns a new config with the given per-file cap.
func (s SearchConfig) WithResultsPerFile(n int) SearchConfig {
	if n > 0 {
		s.resultsPerFile = n
	}
	return s
}

// WithMaxFileResults returns a new config with the given global cap.
func (s SearchConfig) WithMaxFileResults(n int) SearchConfig {
	if n > 0 {
		s.maxFileResults = n
	}
	return s
}

// AutomationConfig configures the macOS automation tools.
type AutomationConfig struct {
	notesFolder   string
	scriptTimeout time.Duration
}

// NewAutomationConfig creates an AutomationConfig with defaults.
func NewAutomationConfig() AutomationConfig {
	return AutomationConfig{
		notesFolder:   DefaultNotesFolder,
		scriptTimeout: DefaultScriptTimeout,
	}
}

// NotesFolder returns the fallback Notes folder name.
func (a AutomationConfig) NotesFolder() string { return a.notesFolder }

// ScriptTimeout returns the osascript execution timeout.
func (a AutomationConfig) ScriptTimeout() time.Duration { return a.scriptTimeout }

// WithNotesFolder returns a new config with the given folder name.
func (a AutomationConfig) WithNotesFolder(name string) AutomationConfig {
	if name != "" {
		a.notesFolder = name
	}
	return a
}

// WithScriptTimeout returns a new config with the given timeout.
func (a AutomationConfig) WithScriptTimeout(d time.Duration) AutomationConfig {
	if d > 0 {
		a.scriptTimeout = d
	}
	return a
}

// OrdersConfig configures the supplier-order store.
type OrdersConfig struct {
	seed bool
}

// NewOrdersConfig creates an OrdersConfig with defaults.
func NewOrdersConfig() OrdersConfig {
	return OrdersConfig{seed: true}
}

// Seed returns whether an empty order store is seeded with sample data.
func (o OrdersConfig) Seed() bool { return o.seed }

// WithSeed returns a new config with the given seed state.
func (o OrdersConfig) WithSeed(seed bool) OrdersConfig {
	o.seed = seed
	return o
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host         string
	port         int
	dataDir      string
	dbURL        string
	knowledgeDir string
	timezone     string
	logLevel     string
	logFormat    LogFormat
	corsOrigins  []string
	apiKeys      []string
	workerCount  int
	search       SearchConfig
	automation   AutomationConfig
	orders       OrdersConfig
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".knowd"
	}
	return filepath.Join(home, ".knowd")
}

// DefaultWorkers returns the worker count used when none is configured:
// half the logical CPUs, at least one.
func DefaultWorkers() int {
	n := runtime.NumCPU() / 2
	if n < 1 {
		n = 1
	}
	return n
}

// DefaultLogger returns the default slog logger for library consumers.
func DefaultLogger() *slog.Logger {
	return slog.Default()
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		host:         DefaultHost,
		port:         DefaultPort,
		dataDir:      dataDir,
		dbURL:        "sqlite:///" + filepath.Join(dataDir, "knowd.db"),
		knowledgeDir: DefaultKnowledgeDir,
		timezone:     DefaultTimezone,
		logLevel:     DefaultLogLevel,
		logFormat:    LogFormatPretty,
		corsOrigins:  []string{DefaultCORSOrigins},
		search:       NewSearchConfig(),
		automation:   NewAutomationConfig(),
		orders:       NewOrdersConfig(),
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// KnowledgeDir returns the root directory of the knowledge base.
func (c AppConfig) KnowledgeDir() string { return c.knowledgeDir }

// Timezone returns the IANA timezone name reported by the time tool.
func (c AppConfig) Timezone() string { return c.timezone }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// CORSOrigins returns the allowed CORS origins.
func (c AppConfig) CORSOrigins() []string {
	origins := make([]string, len(c.corsOrigins))
	copy(origins, c.corsOrigins)
	return origins
}

// APIKeys returns the keys accepted for write-protected HTTP routes.
// An empty slice disables API key authentication.
func (c AppConfig) APIKeys() []string {
	keys := make([]string, len(c.apiKeys))
	copy(keys, c.apiKeys)
	return keys
}

// WorkerCount returns the number of scan workers. When no explicit count
// is configured it resolves to DefaultWorkers.
func (c AppConfig) WorkerCount() int {
	if c.workerCount > 0 {
		return c.workerCount
	}
	return DefaultWorkers()
}

// Search returns the search defaults.
func (c AppConfig) Search() SearchConfig { return c.search }

// Automation returns the automation config.
func (c AppConfig) Automation() AutomationConfig { return c.automation }

// Orders returns the order-store config.
func (c AppConfig) Orders() OrdersConfig { return c.orders }

// EnsureDataDir creates the data directory if it doesn't exist.
func (c AppConfig) EnsureDataDir() error {
	if err := os.MkdirAll(c.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		c.dataDir = dir
		// Keep the default DB co-located with the data directory.
		if c.dbURL == "" || strings.Contains(c.dbURL, "knowd.db") {
			c.dbURL = "sqlite:///" + filepath.Join(dir, "knowd.db")
		}
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithKnowledgeDir sets the knowledge base root directory.
func WithKnowledgeDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.knowledgeDir = dir }
}

// WithTimezone sets the reported timezone.
func WithTimezone(tz string) AppConfigOption {
	return func(c *AppConfig) { c.timezone = tz }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		c.corsOrigins = make([]string, len(origins))
		copy(c.corsOrigins, origins)
	}
}

// WithAPIKeys sets the accepted API keys for write-protected routes.
func WithAPIKeys(keys []string) AppConfigOption {
	return func(c *AppConfig) {
		c.apiKeys = make([]string, len(keys))
		copy(c.apiKeys, keys)
	}
}

// WithWorkerCount sets the number of scan workers.
func WithWorkerCount(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.workerCount = n
		}
	}
}

// WithSearchConfig sets the search defaults.
func WithSearchConfig(s SearchConfig) AppConfigOption {
	return func(c *AppConfig) { c.search = s }
}

// WithAutomationConfig sets the automation config.
func WithAutomationConfig(a AutomationConfig) AppConfigOption {
	return func(c *AppConfig) { c.automation = a }
}

// WithOrdersConfig sets the order-store config.
func WithOrdersConfig(o OrdersConfig) AppConfigOption {
	return func(c *AppConfig) { c.orders = o }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
// This copies all fields from the receiver and then applies the options,
// making it safe to use when adding new fields to AppConfig.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("data_dir", c.dataDir),
		slog.String("knowledge_dir", c.knowledgeDir),
		slog.String("timezone", c.timezone),
		slog.String("log_level", c.logLevel),
		slog.String("db_url", c.maskedDBURL()),
		slog.Int("worker_count", c.WorkerCount()),
		slog.Int("context_lines", c.search.ContextLines()),
		slog.Int("results_per_file", c.search.ResultsPerFile()),
		slog.Int("max_file_results", c.search.MaxFileResults()),
		slog.Bool("seed_orders", c.orders.Seed()),
		slog.Bool("auth_enabled", len(c.apiKeys) > 0),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	return "postgres://***@***"
}

// ParseAPIKeys parses a comma-separated string of API keys. Unlike
// ParseOrigins there is no default: an empty string means no keys.
func ParseAPIKeys(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}

// ParseLogFormat parses a log format name. Unknown names fall back to
// the pretty format.
func ParseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}

// ParseOrigins parses a comma-separated string of CORS origins.
func ParseOrigins(s string) []string {
	if s == "" {
		return []string{DefaultCORSOrigins}
	}
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		return []string{DefaultCORSOrigins}
	}
	return origins
}
