package mcp

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/assistant-mcp/knowd/domain/knowledge"
	"github.com/assistant-mcp/knowd/domain/order"
	"github.com/assistant-mcp/knowd/infrastructure/automation"
)

// Error codes of the collaborator tools. Search tools reuse the query
// rejection codes of the knowledge domain.
const (
	codeEmptyTitle          = "empty_title"
	codeEmptyContent        = "empty_content"
	codeEmptySupplierID     = "empty_supplier_id"
	codeInvalidDateFormat   = "invalid_date_format"
	codeInvalidRequest      = "invalid_request"
	codeUnsupportedPlatform = "unsupported_platform"
	codeScriptFailed        = "script_failed"
	codeQueryFailed         = "query_failed"
)

// handleSearchKnowledgeFile handles the search_knowledge_file tool.
func (s *Server) handleSearchKnowledgeFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keywords, err := request.RequireString("keywords")
	if err != nil {
		return mcp.NewToolResultError("keywords is required"), nil
	}

	fileTypes := request.GetStringSlice("file_types", nil)
	maxResults := request.GetInt("max_results", s.searchCfg.MaxFileResults())
	searchContent := request.GetBool("search_content", false)
	caseSensitive := request.GetBool("case_sensitive", false)

	query, err := knowledge.NewFileQuery(keywords, fileTypes, maxResults, searchContent, caseSensitive)
	if err != nil {
		return searchErrorResult(err), nil
	}

	report, err := s.search.SearchFiles(ctx, s.knowledgeDir, query)
	if err != nil {
		s.logger.Error("file search failed", slog.Any("error", err))
		return searchErrorResult(err), nil
	}

	return jsonResult(newFileSearchPayload(keywords, s.knowledgeDir, report)), nil
}

// handleSearchKnowledgeContent handles the search_knowledge_content tool.
func (s *Server) handleSearchKnowledgeContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keywords, err := request.RequireString("keywords")
	if err != nil {
		return mcp.NewToolResultError("keywords is required"), nil
	}

	fileNames := request.GetStringSlice("file_names", nil)
	if len(fileNames) == 0 {
		fileNames = []string{"*"}
	}
	contextLines := request.GetInt("context_lines", s.searchCfg.ContextLines())
	caseSensitive := request.GetBool("case_sensitive", false)
	maxPerFile := request.GetInt("max_results_per_file", s.searchCfg.ResultsPerFile())

	query, err := knowledge.NewContentQuery(keywords, fileNames, contextLines, caseSensitive, maxPerFile)
	if err != nil {
		return searchErrorResult(err), nil
	}

	report, err := s.search.SearchContent(ctx, s.knowledgeDir, query)
	if err != nil {
		s.logger.Error("content search failed", slog.Any("error", err))
		return searchErrorResult(err), nil
	}

	return jsonResult(newContentSearchPayload(query, s.knowledgeDir, report)), nil
}

// handleGetCurrentTime handles the get_current_time tool.
func (s *Server) handleGetCurrentTime(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(newTimePayload(s.now().In(s.location))), nil
}

// handleAddAppleNotes handles the add_apple_notes tool.
func (s *Server) handleAddAppleNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required"), nil
	}
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil
	}

	if strings.TrimSpace(title) == "" {
		return errorResult(codeEmptyTitle, "note title must not be empty"), nil
	}
	if strings.TrimSpace(content) == "" {
		return errorResult(codeEmptyContent, "note content must not be empty"), nil
	}

	folder := request.GetString("folder", "")

	folderUsed, err := s.notes.Add(ctx, title, content, folder)
	if err != nil {
		return automationErrorResult(s.logger, "note creation failed", err), nil
	}

	return jsonResult(newNotePayload(title, folderUsed, s.now().In(s.location))), nil
}

// handleAddAppleCalendarEvent handles the add_apple_calendar_event tool.
func (s *Server) handleAddAppleCalendarEvent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required"), nil
	}
	startDate, err := request.RequireString("start_date")
	if err != nil {
		return mcp.NewToolResultError("start_date is required"), nil
	}

	if strings.TrimSpace(title) == "" {
		return errorResult(codeEmptyTitle, "event title must not be empty"), nil
	}

	params := automation.EventParams{
		Title:        title,
		StartDate:    strings.TrimSpace(startDate),
		EndDate:      strings.TrimSpace(request.GetString("end_date", "")),
		Location:     request.GetString("location", ""),
		Notes:        request.GetString("notes", ""),
		CalendarName: request.GetString("calendar_name", ""),
		AllDay:       request.GetBool("all_day", false),
	}

	event, err := s.calendar.Add(ctx, params)
	if err != nil {
		var perr *time.ParseError
		if errors.As(err, &perr) {
			return errorResult(codeInvalidDateFormat, err.Error()), nil
		}
		return automationErrorResult(s.logger, "calendar event creation failed", err), nil
	}

	return jsonResult(newEventPayload(title, event, s.now().In(s.location))), nil
}

// handleQuerySupplierOrder handles the query_supplier_order tool.
func (s *Server) handleQuerySupplierOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	supplierID, err := request.RequireString("supplier_id")
	if err != nil {
		return mcp.NewToolResultError("supplier_id is required"), nil
	}
	if strings.TrimSpace(supplierID) == "" {
		return errorResult(codeEmptySupplierID, "supplier id must not be empty"), nil
	}

	status := request.GetString("status", string(order.FilterInProduction))

	orders, err := s.orders.Query(ctx, supplierID, status)
	if err != nil {
		if errors.Is(err, order.ErrInvalidRequest) {
			return errorResult(codeInvalidRequest, err.Error()), nil
		}
		s.logger.Error("supplier order query failed", slog.Any("error", err))
		return errorResult(codeQueryFailed, err.Error()), nil
	}

	return jsonResult(newOrderListPayload(supplierID, orders)), nil
}

// automationErrorResult classifies an automation failure: missing osascript
// support gets its own code so clients can tell platform limits from
// script errors.
func automationErrorResult(logger *slog.Logger, context string, err error) *mcp.CallToolResult {
	if errors.Is(err, automation.ErrUnavailable) {
		return errorResult(codeUnsupportedPlatform, err.Error())
	}
	logger.Error(context, slog.Any("error", err))
	return errorResult(codeScriptFailed, err.Error())
}
