// Package knowledge contains the domain model of the knowledge base
// search core: queries, file candidates, keyword matching, context
// windows, relevance scoring and report assembly.
package knowledge

import (
	"strings"
)

// ParseKeywords splits a raw keyword string on whitespace.
// Empty fields are dropped.
func ParseKeywords(raw string) []string {
	return strings.Fields(raw)
}

// ContentQuery describes a content-level search: which keywords to look
// for inside the text of files whose names match the given patterns.
type ContentQuery struct {
	keywords      []string
	filePatterns  []string
	contextLines  int
	caseSensitive bool
	maxPerFile    int
}

// NewContentQuery validates and normalizes a content search request.
// The raw keyword string is split on whitespace; file patterns are
// matched against file names either as substrings or, when they contain
// a '*' wildcard, as prefix-anchored patterns.
func NewContentQuery(rawKeywords string, filePatterns []string, contextLines int, caseSensitive bool, maxPerFile int) (ContentQuery, error) {
	if strings.TrimSpace(rawKeywords) == "" {
		return ContentQuery{}, NewQueryError(CodeEmptyKeywords, "keywords must not be empty")
	}

	keywords := ParseKeywords(rawKeywords)
	if len(keywords) == 0 {
		return ContentQuery{}, NewQueryError(CodeInvalidKeywords, "keywords must contain at least one term")
	}

	patterns := make([]string, 0, len(filePatterns))
	for _, p := range filePatterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		patterns = append(patterns, p)
	}
	if len(patterns) == 0 {
		return ContentQuery{}, NewQueryError(CodeEmptyFilePatterns, "file patterns must not be empty")
	}

	if contextLines < 0 {
		contextLines = 0
	}
	if maxPerFile < 0 {
		maxPerFile = 0
	}

	return ContentQuery{
		keywords:      keywords,
		filePatterns:  patterns,
		contextLines:  contextLines,
		caseSensitive: caseSensitive,
		maxPerFile:    maxPerFile,
	}, nil
}

// Keywords returns the parsed keyword list.
func (q ContentQuery) Keywords() []string {
	result := make([]string, len(q.keywords))
	copy(result, q.keywords)
	return result
}

// FilePatterns returns the file name patterns.
func (q ContentQuery) FilePatterns() []string {
	result := make([]string, len(q.filePatterns))
	copy(result, q.filePatterns)
	return result
}

// ContextLines returns the number of context lines captured around each
// match.
func (q ContentQuery) ContextLines() int {
	return q.contextLines
}

// CaseSensitive reports whether keyword matching honors letter case.
func (q ContentQuery) CaseSensitive() bool {
	return q.caseSensitive
}

// MaxPerFile returns the per-file result cap.
func (q ContentQuery) MaxPerFile() int {
	return q.maxPerFile
}

// FileQuery describes a file-level search: which keywords to look for
// in file names (and optionally file contents) under a directory.
type FileQuery struct {
	keywords      []string
	fileTypes     []string
	maxResults    int
	searchContent bool
	caseSensitive bool
}

// NewFileQuery validates and normalizes a file search request.
// File type filters are normalized to lowercase extensions with a
// leading dot, so "PDF" and ".pdf" select the same files.
func NewFileQuery(rawKeywords string, fileTypes []string, maxResults int, searchContent, caseSensitive bool) (FileQuery, error) {
	if strings.TrimSpace(rawKeywords) == "" {
		return FileQuery{}, NewQueryError(CodeEmptyKeywords, "keywords must not be empty")
	}

	keywords := ParseKeywords(rawKeywords)
	if len(keywords) == 0 {
		return FileQuery{}, NewQueryError(CodeInvalidKeywords, "keywords must contain at least one term")
	}

	types := make([]string, 0, len(fileTypes))
	for _, t := range fileTypes {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if !strings.HasPrefix(t, ".") {
			t = "." + t
		}
		types = append(types, strings.ToLower(t))
	}

	if maxResults < 0 {
		maxResults = 0
	}

	return FileQuery{
		keywords:      keywords,
		fileTypes:     types,
		maxResults:    maxResults,
		searchContent: searchContent,
		caseSensitive: caseSensitive,
	}, nil
}

// Keywords returns the parsed keyword list.
func (q FileQuery) Keywords() []string {
	result := make([]string, len(q.keywords))
	copy(result, q.keywords)
	return result
}

// FileTypes returns the normalized extension filters. An empty list
// means all file types are eligible.
func (q FileQuery) FileTypes() []string {
	result := make([]string, len(q.fileTypes))
	copy(result, q.fileTypes)
	return result
}

// MaxResults returns the global result cap.
func (q FileQuery) MaxResults() int {
	return q.maxResults
}

// SearchContent reports whether file contents are scanned in addition
// to file names.
func (q FileQuery) SearchContent() bool {
	return q.searchContent
}

// CaseSensitive reports whether keyword matching honors letter case.
func (q FileQuery) CaseSensitive() bool {
	return q.caseSensitive
}

// AllowsType reports whether the given extension passes the type
// filter. The extension is compared case-insensitively and may be given
// with or without a leading dot.
func (q FileQuery) AllowsType(ext string) bool {
	if len(q.fileTypes) == 0 {
		return true
	}
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	for _, t := range q.fileTypes {
		if t == ext {
			return true
		}
	}
	return false
}
