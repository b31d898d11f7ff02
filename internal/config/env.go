// Package config provides application configuration.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g., SEARCH_CONTEXT_LINES).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8000)
	Port int `envconfig:"PORT" default:"8000"`

	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.knowd
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/knowd.db
	DBURL string `envconfig:"DB_URL"`

	// KnowledgeDir is the root directory searched by the knowledge tools.
	// Env: KNOWLEDGE_DIR (default: ./knowledge_base)
	KnowledgeDir string `envconfig:"KNOWLEDGE_DIR" default:"./knowledge_base"`

	// Timezone is the IANA timezone reported by the time tool.
	// Env: TIMEZONE (default: Asia/Shanghai)
	Timezone string `envconfig:"TIMEZONE" default:"Asia/Shanghai"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// CORSOrigins is a comma-separated list of allowed CORS origins.
	// Env: CORS_ORIGINS (default: *)
	CORSOrigins string `envconfig:"CORS_ORIGINS"`

	// APIKeys is a comma-separated list of keys accepted for
	// write-protected HTTP routes. Empty disables authentication.
	// Env: API_KEYS
	APIKeys string `envconfig:"API_KEYS"`

	// WorkerCount is the number of parallel scan workers.
	// Zero means half the logical CPUs, at least one.
	// Env: WORKER_COUNT (default: 0)
	WorkerCount int `envconfig:"WORKER_COUNT" default:"0"`

	// Search configures the knowledge search defaults.
	Search SearchEnv `envconfig:"SEARCH"`

	// Automation configures the macOS automation tools.
	Automation AutomationEnv `envconfig:"AUTOMATION"`

	// Orders configures the supplier-order store.
	Orders OrdersEnv `envconfig:"ORDERS"`
}

// SearchEnv holds environment configuration for search defaults.
type SearchEnv struct {
	// ContextLines is the default context window size around a match.
	// Env: SEARCH_CONTEXT_LINES (default: 2)
	ContextLines int `envconfig:"CONTEXT_LINES" default:"2"`

	// ResultsPerFile is the default per-file match cap.
	// Env: SEARCH_RESULTS_PER_FILE (default: 5)
	ResultsPerFile int `envconfig:"RESULTS_PER_FILE" default:"5"`

	// MaxFileResults is the default global cap for file-level search.
	// Env: SEARCH_MAX_FILE_RESULTS (default: 10)
	MaxFileResults int `envconfig:"MAX_FILE_RESULTS" default:"10"`
}

// AutomationEnv holds environment configuration for automation tools.
type AutomationEnv struct {
	// NotesFolder is the fallback Apple Notes folder.
	// Env: AUTOMATION_NOTES_FOLDER (default: Notes)
	NotesFolder string `envconfig:"NOTES_FOLDER" default:"Notes"`

	// ScriptTimeout is the osascript timeout in seconds.
	// Env: AUTOMATION_SCRIPT_TIMEOUT (default: 30)
	ScriptTimeout float64 `envconfig:"SCRIPT_TIMEOUT" default:"30"`
}

// OrdersEnv holds environment configuration for the order store.
type OrdersEnv struct {
	// Seed controls whether an empty store is seeded with sample orders.
	// Env: ORDERS_SEED (default: true)
	Seed bool `envconfig:"SEED" default:"true"`
}

// LoadFromEnv loads configuration from environment variables.
// It uses no prefix, matching the Python pydantic-settings behavior.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "KNOWD" would require KNOWD_DATA_DIR instead of DATA_DIR.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.DataDir != "" {
		cfg = applyOption(cfg, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		cfg = applyOption(cfg, WithDBURL(e.DBURL))
	}
	if e.KnowledgeDir != "" {
		cfg = applyOption(cfg, WithKnowledgeDir(e.KnowledgeDir))
	}
	if e.Timezone != "" {
		cfg = applyOption(cfg, WithTimezone(e.Timezone))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(ParseLogFormat(e.LogFormat)))
	}
	if e.CORSOrigins != "" {
		cfg = applyOption(cfg, WithCORSOrigins(ParseOrigins(e.CORSOrigins)))
	}
	if e.APIKeys != "" {
		cfg = applyOption(cfg, WithAPIKeys(ParseAPIKeys(e.APIKeys)))
	}
	if e.WorkerCount > 0 {
		cfg = applyOption(cfg, WithWorkerCount(e.WorkerCount))
	}

	cfg = applyOption(cfg, WithSearchConfig(e.Search.ToSearchConfig()))
	cfg = applyOption(cfg, WithAutomationConfig(e.Automation.ToAutomationConfig()))
	cfg = applyOption(cfg, WithOrdersConfig(e.Orders.ToOrdersConfig()))

	return cfg
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

// ToSearchConfig converts SearchEnv to SearchConfig.
func (s SearchEnv) ToSearchConfig() SearchConfig {
	return NewSearchConfig().
		WithContextLines(s.ContextLines).
		WithResultsPerFile(s.ResultsPerFile).
		WithMaxFileResults(s.MaxFileResults)
}

// ToAutomationConfig converts AutomationEnv to AutomationConfig.
func (a AutomationEnv) ToAutomationConfig() AutomationConfig {
	return NewAutomationConfig().
		WithNotesFolder(a.NotesFolder).
		WithScriptTimeout(time.Duration(a.ScriptTimeout * float64(time.Second)))
}

// ToOrdersConfig converts OrdersEnv to OrdersConfig.
func (o OrdersEnv) ToOrdersConfig() OrdersConfig {
	return NewOrdersConfig().WithSeed(o.Seed)
}
