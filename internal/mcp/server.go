// Package mcp provides Model Context Protocol server functionality.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/assistant-mcp/knowd/domain/knowledge"
	"github.com/assistant-mcp/knowd/domain/order"
	"github.com/assistant-mcp/knowd/infrastructure/automation"
	"github.com/assistant-mcp/knowd/internal/config"
)

// KnowledgeSearcher provides knowledge base search operations for MCP tools.
type KnowledgeSearcher interface {
	SearchFiles(ctx context.Context, root string, query knowledge.FileQuery) (knowledge.FileReport, error)
	SearchContent(ctx context.Context, root string, query knowledge.ContentQuery) (knowledge.ContentReport, error)
}

// OrderQuerier provides supplier order lookups for MCP tools.
type OrderQuerier interface {
	Query(ctx context.Context, supplierID, statusFilter string) ([]order.Order, error)
}

// NoteCreator writes notes into Apple Notes.
type NoteCreator interface {
	Add(ctx context.Context, title, content, folder string) (string, error)
}

// EventCreator creates events in Apple Calendar.
type EventCreator interface {
	Add(ctx context.Context, params automation.EventParams) (automation.Event, error)
}

// Server wraps the MCP server with the knowd tool set.
type Server struct {
	mcpServer *server.MCPServer
	search    KnowledgeSearcher
	orders    OrderQuerier
	notes     NoteCreator
	calendar  EventCreator

	knowledgeDir string
	searchCfg    config.SearchConfig
	timezone     string
	location     *time.Location
	now          func() time.Time
	logger       *slog.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithKnowledgeDir sets the root directory the search tools operate on.
func WithKnowledgeDir(dir string) ServerOption {
	return func(s *Server) {
		if dir != "" {
			s.knowledgeDir = dir
		}
	}
}

// WithSearchDefaults sets the default caps applied when a tool call omits
// the corresponding argument.
func WithSearchDefaults(cfg config.SearchConfig) ServerOption {
	return func(s *Server) {
		s.searchCfg = cfg
	}
}

// WithTimezone sets the IANA timezone reported by the time tool.
func WithTimezone(name string) ServerOption {
	return func(s *Server) {
		if name != "" {
			s.timezone = name
		}
	}
}

// WithClock overrides the time source. Tests use this for deterministic
// timestamps.
func WithClock(now func() time.Time) ServerOption {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(search KnowledgeSearcher, orders OrderQuerier, notes NoteCreator, calendar EventCreator, version string, logger *slog.Logger, opts ...ServerOption) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		search:       search,
		orders:       orders,
		notes:        notes,
		calendar:     calendar,
		knowledgeDir: config.DefaultKnowledgeDir,
		searchCfg:    config.NewSearchConfig(),
		timezone:     config.DefaultTimezone,
		now:          time.Now,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	loc, err := time.LoadLocation(s.timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to UTC", slog.String("timezone", s.timezone))
		loc = time.UTC
	}
	s.location = loc

	mcpServer := server.NewMCPServer(
		"knowd",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

// registerTools registers all knowd tools with the MCP server.
func (s *Server) registerTools(mcpServer *server.MCPServer) {
	fileSearchTool := mcp.NewTool("search_knowledge_file",
		mcp.WithDescription("Search the knowledge base for files whose names or contents match the given keywords"),
		mcp.WithString("keywords",
			mcp.Required(),
			mcp.Description("Search keywords, multiple terms separated by spaces"),
		),
		mcp.WithArray("file_types",
			mcp.Description("File extensions to include, such as .md or .pdf (default: all types)"),
			mcp.WithStringItems(),
		),
		mcp.WithNumber("max_results",
			mcp.Description(fmt.Sprintf("Maximum number of files to return (default: %d)", config.DefaultMaxFileResults)),
		),
		mcp.WithBoolean("search_content",
			mcp.Description("Also scan file contents, not just names (default: false)"),
		),
		mcp.WithBoolean("case_sensitive",
			mcp.Description("Match keyword letter case exactly (default: false)"),
		),
	)
	mcpServer.AddTool(fileSearchTool, s.handleSearchKnowledgeFile)

	contentSearchTool := mcp.NewTool("search_knowledge_content",
		mcp.WithDescription("Extract keyword matches with surrounding context from knowledge base files"),
		mcp.WithArray("file_names",
			mcp.Description("File name patterns to scan, substrings or * wildcards (default: all files)"),
			mcp.WithStringItems(),
		),
		mcp.WithString("keywords",
			mcp.Required(),
			mcp.Description("Search keywords, multiple terms separated by spaces"),
		),
		mcp.WithNumber("context_lines",
			mcp.Description(fmt.Sprintf("Lines of context before and after each match (default: %d)", config.DefaultContextLines)),
		),
		mcp.WithBoolean("case_sensitive",
			mcp.Description("Match keyword letter case exactly (default: false)"),
		),
		mcp.WithNumber("max_results_per_file",
			mcp.Description(fmt.Sprintf("Maximum matches reported per file (default: %d)", config.DefaultResultsPerFile)),
		),
	)
	mcpServer.AddTool(contentSearchTool, s.handleSearchKnowledgeContent)

	timeTool := mcp.NewTool("get_current_time",
		mcp.WithDescription("Get the current date and time in the configured timezone"),
	)
	mcpServer.AddTool(timeTool, s.handleGetCurrentTime)

	notesTool := mcp.NewTool("add_apple_notes",
		mcp.WithDescription("Create a note in Apple Notes (macOS only)"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Note title"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Note body, may span multiple lines"),
		),
		mcp.WithString("folder",
			mcp.Description("Target folder name (default: Notes)"),
		),
	)
	mcpServer.AddTool(notesTool, s.handleAddAppleNotes)

	calendarTool := mcp.NewTool("add_apple_calendar_event",
		mcp.WithDescription("Create an event in Apple Calendar (macOS only)"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title"),
		),
		mcp.WithString("start_date",
			mcp.Required(),
			mcp.Description("Start time, YYYY-MM-DD HH:MM or YYYY-MM-DD for an all-day event"),
		),
		mcp.WithString("end_date",
			mcp.Description("End time in the same formats (default: one hour after start)"),
		),
		mcp.WithString("location",
			mcp.Description("Event location"),
		),
		mcp.WithString("notes",
			mcp.Description("Event description"),
		),
		mcp.WithString("calendar_name",
			mcp.Description("Target calendar name (default: first calendar)"),
		),
		mcp.WithBoolean("all_day",
			mcp.Description("Create an all-day event (default: false)"),
		),
	)
	mcpServer.AddTool(calendarTool, s.handleAddAppleCalendarEvent)

	orderTool := mcp.NewTool("query_supplier_order",
		mcp.WithDescription("List a supplier's orders with priority scores and delay risk, for rescheduling decisions"),
		mcp.WithString("supplier_id",
			mcp.Required(),
			mcp.Description("Supplier ID"),
		),
		mcp.WithString("status",
			mcp.Description("Order status filter: in_production, pending or all (default: in_production)"),
		),
	)
	mcpServer.AddTool(orderTool, s.handleQuerySupplierOrder)
}

// errorPayload is the uniform failure shape of tool responses.
type errorPayload struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// errorResult builds a success:false JSON result with a stable error code
// and a human-readable message.
func errorResult(code, message string) *mcp.CallToolResult {
	return jsonResult(errorPayload{Success: false, Error: code, Message: message})
}

// searchErrorResult maps a search failure onto the error payload, keeping
// the query rejection code when there is one.
func searchErrorResult(err error) *mcp.CallToolResult {
	var qerr *knowledge.QueryError
	if errors.As(err, &qerr) {
		return errorResult(qerr.Code(), qerr.Message())
	}
	return errorResult(knowledge.CodeSearchFailed, err.Error())
}

// jsonResult marshals v into a JSON text result.
func jsonResult(v any) *mcp.CallToolResult {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err))
	}
	return mcp.NewToolResultText(string(jsonBytes))
}

// MCPServer returns the underlying MCP server for HTTP mounting and tests.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
