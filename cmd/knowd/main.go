// Package main is the entry point for the knowd CLI.
//
//	@title						Knowd API
//	@version					1.0
//	@description				Knowledge base search and supplier order coordination served over MCP and HTTP
//	@host						localhost:8000
//	@BasePath					/
//	@securityDefinitions.apikey	APIKeyAuth
//	@in							header
//	@name						X-API-KEY
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/assistant-mcp/knowd/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knowd",
		Short: "Knowd knowledge and order coordination server",
		Long:  `Knowd searches a local knowledge base and coordinates supplier production orders, exposed as MCP tools for AI assistants and as an HTTP API.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(stdioCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
