package knowd

import (
	"log/slog"
	"time"

	"github.com/assistant-mcp/knowd/internal/config"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	app    config.AppConfig
	logger *slog.Logger
	clock  func() time.Time
}

// newClientConfig creates a clientConfig with defaults from internal/config.
// This ensures all defaults come from the single source of truth.
func newClientConfig() *clientConfig {
	return &clientConfig{
		app: config.NewAppConfig(),
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithConfig replaces the whole application configuration. Options
// applied after it still take effect.
func WithConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) {
		c.app = cfg
	}
}

// WithSQLite configures a SQLite database at the given path.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithDBURL("sqlite:///" + path))
	}
}

// WithDatabaseURL sets the database connection URL. Both sqlite:///path
// and postgresql:// URLs are accepted.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithDBURL(url))
	}
}

// WithDataDir sets the data directory. The default SQLite database
// moves along with it.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithDataDir(dir))
	}
}

// WithKnowledgeDir sets the knowledge base root searched by the
// knowledge tools.
func WithKnowledgeDir(dir string) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithKnowledgeDir(dir))
	}
}

// WithTimezone sets the IANA timezone reported by the time tool.
func WithTimezone(tz string) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithTimezone(tz))
	}
}

// WithAPIKeys sets the API keys for HTTP API authentication.
func WithAPIKeys(keys ...string) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithAPIKeys(keys))
	}
}

// WithWorkerCount sets the number of parallel scan workers.
// Defaults to half the logical CPUs. Values <= 0 are ignored.
func WithWorkerCount(n int) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithWorkerCount(n))
	}
}

// WithSeedOrders controls whether an empty order store is seeded with
// sample data. Defaults to true.
func WithSeedOrders(seed bool) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithOrdersConfig(c.app.Orders().WithSeed(seed)))
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithClock overrides the time source of the order operations.
// Tests use this for deterministic IDs and dates.
func WithClock(clock func() time.Time) Option {
	return func(c *clientConfig) {
		c.clock = clock
	}
}
