package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/assistant-mcp/knowd"
	"github.com/assistant-mcp/knowd/internal/log"
	"github.com/assistant-mcp/knowd/internal/mcp"
)

func stdioCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

This allows AI assistants to search the knowledge base, query supplier
orders, and drive the macOS automation tools.
Configuration is loaded from environment variables and .env file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStdio(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}

func runStdio(envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	// Logs go to stderr; stdout carries the MCP transport.
	logger := log.ConfigureStdio(cfg)
	slogger := logger.Slog()

	slogger.Info("starting MCP server",
		slog.String("version", version),
		slog.String("data_dir", cfg.DataDir()),
		slog.String("knowledge_dir", cfg.KnowledgeDir()),
	)

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

	mcpServer := mcp.NewServer(client.Search, client.Orders, client.Notes, client.Calendar, version, slogger,
		mcp.WithKnowledgeDir(cfg.KnowledgeDir()),
		mcp.WithSearchDefaults(cfg.Search()),
		mcp.WithTimezone(cfg.Timezone()),
	)

	return mcpServer.ServeStdio()
}
