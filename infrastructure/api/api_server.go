package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/server"

	"github.com/assistant-mcp/knowd"
	apimiddleware "github.com/assistant-mcp/knowd/infrastructure/api/middleware"
	v1 "github.com/assistant-mcp/knowd/infrastructure/api/v1"
	mcpinternal "github.com/assistant-mcp/knowd/internal/mcp"
)

// APIServer provides an HTTP API backed by a knowd Client.
type APIServer struct {
	client       *knowd.Client
	apiKeys      []string
	version      string
	server       *Server
	router       chi.Router
	routerCalled bool
	logger       *slog.Logger
}

// APIServerOption customizes an APIServer.
type APIServerOption func(*APIServer)

// WithVersion sets the version the mounted MCP server reports in its
// initialize handshake.
func WithVersion(v string) APIServerOption {
	return func(a *APIServer) { a.version = v }
}

// NewAPIServer creates a new APIServer wired to the given knowd Client.
// apiKeys configures write-protection: mutating endpoints (POST, PUT, PATCH,
// DELETE) under /supplierOrder require a valid key. Read-only endpoints,
// health checks, MCP, and docs remain open. An empty key list disables
// write-protection.
func NewAPIServer(client *knowd.Client, apiKeys []string, opts ...APIServerOption) *APIServer {
	a := &APIServer{
		client:  client,
		apiKeys: apiKeys,
		version: "dev",
		logger:  client.Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Router returns the chi router for customization before starting.
// Call this first, add custom middleware with router.Use(), then call MountRoutes().
// If not called, ListenAndServe creates a default router with all standard routes.
func (a *APIServer) Router() chi.Router {
	if a.router != nil {
		return a.router
	}

	a.router = chi.NewRouter()
	a.routerCalled = true
	return a.router
}

// MountRoutes wires up all API routes on the router.
// Call this after adding any custom middleware via Router().Use().
func (a *APIServer) MountRoutes() {
	if a.router == nil {
		a.Router()
	}
	a.mountRoutes(a.router)
}

// mountRoutes wires up all API routes on the given router.
func (a *APIServer) mountRoutes(router chi.Router) {
	c := a.client

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   c.Config().CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", apimiddleware.APIKeyHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", healthHandler)
	router.Get("/healthz", healthHandler)

	ordersRouter := v1.NewSupplierOrdersRouter(c)

	router.Route("/supplierOrder", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))
		r.Use(apimiddleware.WriteProtectAuth(a.apiKeys))
		r.Mount("/", ordersRouter.Routes())
	})

	// The MCP (Model Context Protocol) endpoint gets no timeout middleware.
	// MCP uses streaming responses and manages its own session state via
	// response headers, which is incompatible with chi's Timeout middleware
	// that wraps the ResponseWriter.
	cfg := c.Config()
	mcpSrv := mcpinternal.NewServer(c.Search, c.Orders, c.Notes, c.Calendar, a.version, a.logger,
		mcpinternal.WithKnowledgeDir(cfg.KnowledgeDir()),
		mcpinternal.WithSearchDefaults(cfg.Search()),
		mcpinternal.WithTimezone(cfg.Timezone()),
	)
	httpHandler := server.NewStreamableHTTPServer(mcpSrv.MCPServer())
	router.Mount("/mcp", httpHandler)
}

// DocsRouter returns a router for Swagger UI and OpenAPI spec.
func (a *APIServer) DocsRouter(specURL string) *DocsRouter {
	return NewDocsRouter(specURL)
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.logger)
	a.server = &server

	if a.routerCalled && a.router != nil {
		server.Router().Mount("/", a.router)
	} else {
		a.mountRoutes(server.Router())
	}

	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the router as an http.Handler for use with custom servers.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		a.Router()
		a.MountRoutes()
	}
	return a.router
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
