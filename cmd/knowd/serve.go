package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/assistant-mcp/knowd"
	"github.com/assistant-mcp/knowd/infrastructure/api"
	apimiddleware "github.com/assistant-mcp/knowd/infrastructure/api/middleware"
	"github.com/assistant-mcp/knowd/internal/config"
	"github.com/assistant-mcp/knowd/internal/log"
)

// serveFlags holds the command line overrides of the serve command.
type serveFlags struct {
	envFile      string
	host         string
	port         int
	knowledgeDir string
	dbURL        string
	logLevel     string
	logFormat    string
}

func serveCmd() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                    Server host to bind to (default: 0.0.0.0)
  PORT                    Server port to listen on (default: 8000)
  DATA_DIR                Data directory (default: ~/.knowd)
  DB_URL                  Database URL (default: sqlite:///{data_dir}/knowd.db)
  KNOWLEDGE_DIR           Knowledge base root directory (default: ./knowledge_base)
  TIMEZONE                IANA timezone of the time tool (default: Asia/Shanghai)
  LOG_LEVEL               Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT              Log format: pretty, json (default: pretty)
  CORS_ORIGINS            Comma-separated list of allowed CORS origins (default: *)
  API_KEYS                Comma-separated list of valid API keys
  WORKER_COUNT            Parallel scan workers (default: half the CPUs)

  SEARCH_CONTEXT_LINES        Context lines around content matches (default: 2)
  SEARCH_RESULTS_PER_FILE     Per-file match cap (default: 5)
  SEARCH_MAX_FILE_RESULTS     File search result cap (default: 10)

  AUTOMATION_NOTES_FOLDER     Fallback Apple Notes folder (default: Notes)
  AUTOMATION_SCRIPT_TIMEOUT   osascript timeout in seconds (default: 30)

  ORDERS_SEED             Seed an empty order store with sample data (default: true)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(flags)
		},
	}

	cmd.Flags().StringVar(&flags.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&flags.host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&flags.port, "port", 0, "Server port to listen on (default: 8000)")
	cmd.Flags().StringVar(&flags.knowledgeDir, "knowledge-dir", "", "Knowledge base root directory")
	cmd.Flags().StringVar(&flags.dbURL, "db-url", "", "Database URL")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", "", "Log format: pretty, json")

	return cmd
}

func runServe(flags serveFlags) error {
	cfg, err := loadConfig(flags.envFile)
	if err != nil {
		return err
	}

	// Flags take precedence over env vars.
	cfg = applyServeOverrides(cfg, flags)

	addr := cfg.Addr()

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	logger := log.Configure(cfg)
	slogger := logger.Slog()

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	slogger.LogAttrs(context.Background(), slog.LevelInfo, "starting knowd", attrs...)

	client, err := knowd.New(
		knowd.WithConfig(cfg),
		knowd.WithLogger(slogger),
	)
	if err != nil {
		return fmt.Errorf("create knowd client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close knowd client", slog.Any("error", err))
		}
	}()

	apiServer := api.NewAPIServer(client, cfg.APIKeys(), api.WithVersion(version))
	router := apiServer.Router()

	// Request logging must be added before MountRoutes.
	router.Use(apimiddleware.Logging(slogger))

	apiServer.MountRoutes()

	// Root endpoint with API info
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, `{"name":"knowd","version":"%s","docs":"/docs"}`, version)
	})

	// Documentation routes
	docsRouter := apiServer.DocsRouter("/docs/openapi.json")
	router.Mount("/docs", docsRouter.Routes())

	server := api.NewServer(addr, slogger)
	server.Router().Mount("/", router)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slogger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("shutdown error", slog.Any("error", err))
		}
	}()

	slogger.Info("starting server", slog.String("addr", addr))
	if err := server.Start(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, flags serveFlags) config.AppConfig {
	var opts []config.AppConfigOption

	if flags.host != "" {
		opts = append(opts, config.WithHost(flags.host))
	}
	if flags.port != 0 {
		opts = append(opts, config.WithPort(flags.port))
	}
	if flags.knowledgeDir != "" {
		opts = append(opts, config.WithKnowledgeDir(flags.knowledgeDir))
	}
	if flags.dbURL != "" {
		opts = append(opts, config.WithDBURL(flags.dbURL))
	}
	if flags.logLevel != "" {
		opts = append(opts, config.WithLogLevel(flags.logLevel))
	}
	if flags.logFormat != "" {
		opts = append(opts, config.WithLogFormat(config.ParseLogFormat(flags.logFormat)))
	}

	return cfg.Apply(opts...)
}
