package mcp

import (
	"fmt"
	"math"
	"time"

	"github.com/assistant-mcp/knowd/domain/knowledge"
	"github.com/assistant-mcp/knowd/domain/order"
	"github.com/assistant-mcp/knowd/infrastructure/automation"
)

// Timestamp formats used in tool responses.
const (
	payloadTimeLayout = "2006-01-02 15:04:05"
	payloadDateLayout = "2006-01-02"
)

// round3 keeps scores stable across float arithmetic differences.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// filePayload is the response of search_knowledge_file.
type filePayload struct {
	Success           bool             `json:"success"`
	Query             string           `json:"query"`
	Directory         string           `json:"directory"`
	TotalFilesScanned int              `json:"total_files_scanned"`
	MatchingFiles     int              `json:"matching_files"`
	Results           []fileHitPayload `json:"results"`
	Message           string           `json:"message"`
}

type fileHitPayload struct {
	FileName       string             `json:"file_name"`
	FilePath       string             `json:"file_path"`
	FileSize       int64              `json:"file_size"`
	FileType       string             `json:"file_type"`
	ModifiedTime   string             `json:"modified_time"`
	MatchType      string             `json:"match_type"`
	RelevanceScore float64            `json:"relevance_score"`
	Matches        []fileMatchPayload `json:"matches"`
}

type fileMatchPayload struct {
	Type        string `json:"type"`
	Keyword     string `json:"keyword"`
	MatchedText string `json:"matched_text"`
	Position    *int   `json:"position,omitempty"`
	LineNumber  int    `json:"line_number,omitempty"`
	Context     string `json:"context,omitempty"`
}

func newFileSearchPayload(rawKeywords, directory string, report knowledge.FileReport) filePayload {
	hits := report.Hits()
	results := make([]fileHitPayload, 0, len(hits))
	for _, hit := range hits {
		results = append(results, newFileHitPayload(hit))
	}

	return filePayload{
		Success:           true,
		Query:             rawKeywords,
		Directory:         directory,
		TotalFilesScanned: report.FilesScanned(),
		MatchingFiles:     report.MatchingFiles(),
		Results:           results,
		Message:           fmt.Sprintf("Found %d matching files out of %d scanned", report.MatchingFiles(), report.FilesScanned()),
	}
}

func newFileHitPayload(hit knowledge.FileHit) fileHitPayload {
	file := hit.File()
	matches := hit.Matches()

	matchPayloads := make([]fileMatchPayload, 0, len(matches))
	for _, m := range matches {
		p := fileMatchPayload{
			Type:        string(m.Kind()),
			Keyword:     m.Keyword(),
			MatchedText: m.Text(),
		}
		switch m.Kind() {
		case knowledge.FileMatchName:
			position := m.Position()
			p.Position = &position
		case knowledge.FileMatchContent:
			p.LineNumber = m.LineNumber()
			p.Context = m.Context()
		}
		matchPayloads = append(matchPayloads, p)
	}

	return fileHitPayload{
		FileName:       file.Name(),
		FilePath:       file.Path(),
		FileSize:       file.Size(),
		FileType:       file.Ext(),
		ModifiedTime:   file.ModTime().Format(payloadTimeLayout),
		MatchType:      hit.MatchType(),
		RelevanceScore: round3(hit.Score()),
		Matches:        matchPayloads,
	}
}

// contentPayload is the response of search_knowledge_content.
type contentPayload struct {
	Success         bool                   `json:"success"`
	Query           contentQueryPayload    `json:"query"`
	Statistics      statisticsPayload      `json:"statistics"`
	Results         []contentResultPayload `json:"results"`
	Recommendations []string               `json:"recommendations"`
	Message         string                 `json:"message"`
}

type contentQueryPayload struct {
	Keywords     []string `json:"keywords"`
	FilePatterns []string `json:"file_patterns"`
	Directory    string   `json:"directory"`
	ContextLines int      `json:"context_lines"`
}

type statisticsPayload struct {
	TotalFilesScanned     int      `json:"total_files_scanned"`
	FilesWithMatches      int      `json:"files_with_matches"`
	TotalMatchesFound     int      `json:"total_matches_found"`
	UniqueKeywordsMatched []string `json:"unique_keywords_matched"`
}

type contentResultPayload struct {
	FileInfo       fileInfoPayload       `json:"file_info"`
	ContentMatches []contentMatchPayload `json:"content_matches"`
	Summary        resultSummaryPayload  `json:"summary"`
}

type fileInfoPayload struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
	FileType     string `json:"file_type"`
}

type contentMatchPayload struct {
	Keyword    string               `json:"keyword"`
	LineNumber int                  `json:"line_number"`
	ExactMatch string               `json:"exact_match"`
	Context    contextPayload       `json:"context"`
	Relevance  relevancePayload     `json:"relevance"`
	Metadata   matchMetadataPayload `json:"metadata"`
}

type contextPayload struct {
	Before      []string `json:"before"`
	MatchedLine string   `json:"matched_line"`
	After       []string `json:"after"`
}

type relevancePayload struct {
	Score float64 `json:"score"`
}

type matchMetadataPayload struct {
	MatchType         string `json:"match_type"`
	OccurrencesInLine int    `json:"occurrences_in_line"`
	MatchStart        int    `json:"match_start"`
	MatchEnd          int    `json:"match_end"`
}

type resultSummaryPayload struct {
	TotalMatches      int      `json:"total_matches"`
	UniqueKeywords    []string `json:"unique_keywords"`
	AvgRelevanceScore float64  `json:"avg_relevance_score"`
}

func newContentSearchPayload(query knowledge.ContentQuery, directory string, report knowledge.ContentReport) contentPayload {
	fileResults := report.Results()
	results := make([]contentResultPayload, 0, len(fileResults))
	for _, r := range fileResults {
		results = append(results, newContentResultPayload(r))
	}

	stats := report.Stats()
	message := fmt.Sprintf("Extracted %d matches from %d files", stats.TotalMatches(), stats.FilesWithMatches())
	if stats.FilesScanned() == 0 {
		message = "No files matched the given file patterns"
	}

	return contentPayload{
		Success: true,
		Query: contentQueryPayload{
			Keywords:     query.Keywords(),
			FilePatterns: query.FilePatterns(),
			Directory:    directory,
			ContextLines: query.ContextLines(),
		},
		Statistics: statisticsPayload{
			TotalFilesScanned:     stats.FilesScanned(),
			FilesWithMatches:      stats.FilesWithMatches(),
			TotalMatchesFound:     stats.TotalMatches(),
			UniqueKeywordsMatched: stats.Keywords(),
		},
		Results:         results,
		Recommendations: report.Recommendations(),
		Message:         message,
	}
}

func newContentResultPayload(result knowledge.FileResult) contentResultPayload {
	file := result.File()
	matches := result.Matches()

	matchPayloads := make([]contentMatchPayload, 0, len(matches))
	for _, m := range matches {
		span := m.Span()
		window := m.Window()
		matchPayloads = append(matchPayloads, contentMatchPayload{
			Keyword:    m.Keyword(),
			LineNumber: m.LineNumber(),
			ExactMatch: span.Text(),
			Context: contextPayload{
				Before:      window.Before(),
				MatchedLine: window.Line(),
				After:       window.After(),
			},
			Relevance: relevancePayload{Score: round3(m.Score())},
			Metadata: matchMetadataPayload{
				MatchType:         string(span.Kind()),
				OccurrencesInLine: m.Occurrences(),
				MatchStart:        span.Start(),
				MatchEnd:          span.End(),
			},
		})
	}

	fileType := file.Ext()
	if fileType == "" {
		fileType = "unknown"
	}

	summary := result.Summary()
	return contentResultPayload{
		FileInfo: fileInfoPayload{
			Name:         file.Name(),
			Path:         file.Path(),
			Size:         file.Size(),
			ModifiedTime: file.ModTime().Format(payloadTimeLayout),
			FileType:     fileType,
		},
		ContentMatches: matchPayloads,
		Summary: resultSummaryPayload{
			TotalMatches:      summary.TotalMatches(),
			UniqueKeywords:    summary.Keywords(),
			AvgRelevanceScore: round3(summary.AvgRelevance()),
		},
	}
}

// timePayload is the response of get_current_time.
type timePayload struct {
	Success       bool    `json:"success"`
	CurrentTime   string  `json:"current_time"`
	Timestamp     float64 `json:"timestamp"`
	FormattedDate string  `json:"formatted_date"`
	FormattedTime string  `json:"formatted_time"`
	Timezone      string  `json:"timezone"`
	Message       string  `json:"message"`
}

func newTimePayload(now time.Time) timePayload {
	zone := now.Location().String()
	return timePayload{
		Success:       true,
		CurrentTime:   now.Format(payloadTimeLayout),
		Timestamp:     float64(now.UnixNano()) / float64(time.Second),
		FormattedDate: now.Format(payloadDateLayout),
		FormattedTime: now.Format("15:04:05"),
		Timezone:      zone,
		Message:       fmt.Sprintf("Current time in %s", zone),
	}
}

// notePayload is the response of add_apple_notes.
type notePayload struct {
	Success   bool   `json:"success"`
	Title     string `json:"title"`
	Folder    string `json:"folder"`
	CreatedAt string `json:"created_at"`
	Message   string `json:"message"`
}

func newNotePayload(title, folder string, now time.Time) notePayload {
	return notePayload{
		Success:   true,
		Title:     title,
		Folder:    folder,
		CreatedAt: now.Format(payloadTimeLayout),
		Message:   fmt.Sprintf("Note %q created in folder %q", title, folder),
	}
}

// eventPayload is the response of add_apple_calendar_event.
type eventPayload struct {
	Success   bool   `json:"success"`
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Calendar  string `json:"calendar"`
	AllDay    bool   `json:"all_day"`
	CreatedAt string `json:"created_at"`
	Message   string `json:"message"`
}

func newEventPayload(title string, event automation.Event, now time.Time) eventPayload {
	// All-day events report dates, timed events full timestamps.
	layout := payloadTimeLayout
	if event.AllDay {
		layout = payloadDateLayout
	}

	return eventPayload{
		Success:   true,
		Title:     title,
		StartTime: event.Start.Format(layout),
		EndTime:   event.End.Format(layout),
		Calendar:  event.Calendar,
		AllDay:    event.AllDay,
		CreatedAt: now.Format(payloadTimeLayout),
		Message:   fmt.Sprintf("Calendar event %q created in %q", title, event.Calendar),
	}
}

// orderListPayload is the response of query_supplier_order.
type orderListPayload struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Orders  []orderPayload `json:"orders"`
}

type orderPayload struct {
	OrderID          string  `json:"order_id"`
	ProductName      string  `json:"product_name"`
	RequiredQuantity int     `json:"required_quantity"`
	PriorityScore    float64 `json:"priority_score"`
	OrderCreatedAt   string  `json:"order_created_at"`
	CanBeDelayed     bool    `json:"can_be_delayed"`
	DelayRiskLevel   string  `json:"delay_risk_level"`
}

func newOrderListPayload(supplierID string, orders []order.Order) orderListPayload {
	entries := make([]orderPayload, 0, len(orders))
	for _, o := range orders {
		entries = append(entries, orderPayload{
			OrderID:          o.ID(),
			ProductName:      o.ProductName(),
			RequiredQuantity: o.RequiredQuantity(),
			PriorityScore:    o.PriorityScore(),
			OrderCreatedAt:   o.CreatedAt().Format(payloadTimeLayout),
			CanBeDelayed:     o.CanBeDelayed(),
			DelayRiskLevel:   string(o.DelayRiskLevel()),
		})
	}

	return orderListPayload{
		Success: true,
		Message: fmt.Sprintf("Found %d orders for supplier %s", len(entries), supplierID),
		Orders:  entries,
	}
}
