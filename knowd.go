// Package knowd provides a personal assistant backend: knowledge base
// search, supplier order coordination and Apple automation behind a
// single client, served over MCP and a small HTTP API.
//
// Basic usage:
//
//	client, err := knowd.New(
//	    knowd.WithSQLite(".knowd/knowd.db"),
//	    knowd.WithKnowledgeDir("./knowledge_base"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Find files in the knowledge base
//	query, err := knowledge.NewFileQuery("setup guide", nil, 10, true, false)
//	report, err := client.Search.SearchFiles(ctx, client.Config().KnowledgeDir(), query)
//
//	// Query supplier orders
//	orders, err := client.Orders.Query(ctx, "SUP001", "in_production")
package knowd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/assistant-mcp/knowd/application/service"
	"github.com/assistant-mcp/knowd/infrastructure/automation"
	"github.com/assistant-mcp/knowd/infrastructure/extractor"
	"github.com/assistant-mcp/knowd/infrastructure/locator"
	"github.com/assistant-mcp/knowd/infrastructure/persistence"
	"github.com/assistant-mcp/knowd/internal/config"
	"github.com/assistant-mcp/knowd/internal/database"
)

// Client is the main entry point for the knowd library.
//
// Access resources via struct fields:
//
//	client.Search.SearchContent(ctx, root, query)
//	client.Orders.Query(ctx, "SUP001", "pending")
//	client.Notes.Add(ctx, "Title", "Body", "")
type Client struct {
	// Public resource fields (direct service access)
	Search   *service.KnowledgeSearch
	Orders   *service.Orders
	Notes    *automation.Notes
	Calendar *automation.Calendar

	db     database.Database
	config config.AppConfig
	logger *slog.Logger
	closed atomic.Bool
	mu     sync.Mutex
}

// New creates a new Client with the given options. The database schema
// is migrated on creation, and an empty order store is seeded with
// sample data unless seeding is disabled.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	appCfg := cfg.app

	logger := cfg.logger
	if logger == nil {
		logger = config.DefaultLogger()
	}

	if err := appCfg.EnsureDataDir(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, appCfg.DBURL())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if db.IsPostgres() {
		err := db.ConfigurePool(
			database.DefaultMaxOpenConns,
			database.DefaultMaxIdleConns,
			database.DefaultConnMaxLifetime,
		)
		if err != nil {
			errClose := db.Close()
			return nil, errors.Join(fmt.Errorf("configure pool: %w", err), errClose)
		}
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	if err := persistence.ValidateSchema(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("validate schema: %w", err), errClose)
	}

	if appCfg.Orders().Seed() {
		if err := persistence.SeedSampleData(ctx, db); err != nil {
			errClose := db.Close()
			return nil, errors.Join(fmt.Errorf("seed orders: %w", err), errClose)
		}
	}

	orderStore := persistence.NewOrderStore(db)

	walker := locator.NewWalker(logger)
	extr := extractor.New(nil, nil, logger)

	searchSvc, err := service.NewKnowledgeSearch(walker, extr, appCfg.WorkerCount(), logger)
	if err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("create knowledge search: %w", err), errClose)
	}

	var orderOpts []service.OrdersOption
	if cfg.clock != nil {
		orderOpts = append(orderOpts, service.WithClock(cfg.clock))
	}

	auto := appCfg.Automation()
	client := &Client{
		Search: searchSvc,
		Orders: service.NewOrders(orderStore, logger, orderOpts...),
		Notes: automation.NewNotes(logger,
			automation.WithNotesFolder(auto.NotesFolder()),
			automation.WithNotesTimeout(auto.ScriptTimeout()),
		),
		Calendar: automation.NewCalendar(logger,
			automation.WithCalendarTimeout(auto.ScriptTimeout()),
		),
		db:     db,
		config: appCfg,
		logger: logger,
	}

	logger.Info("knowd client created",
		slog.String("knowledge_dir", appCfg.KnowledgeDir()),
		slog.Int("workers", appCfg.WorkerCount()),
	)

	return client, nil
}

// Close releases all resources, including the search worker pool and
// the database connection.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.Search.Release()

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Info("knowd client closed")
	return nil
}

// Config returns the effective application configuration.
func (c *Client) Config() config.AppConfig {
	return c.config
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}
