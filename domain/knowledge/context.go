package knowledge

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SnippetRadius is how many bytes of surrounding text a content snippet
// keeps on each side of a match during file-level search.
const SnippetRadius = 20

// BuildWindow extracts up to contextLines lines before and after the
// 1-based line number, clamped to the bounds of the content. Trailing
// whitespace is removed from every returned line, including the matched
// line itself.
func BuildWindow(lines []string, lineNumber, contextLines int) ContextWindow {
	if lineNumber < 1 || lineNumber > len(lines) {
		return NewContextWindow(nil, "", nil)
	}
	if contextLines < 0 {
		contextLines = 0
	}

	start := lineNumber - contextLines - 1
	if start < 0 {
		start = 0
	}
	end := lineNumber + contextLines
	if end > len(lines) {
		end = len(lines)
	}

	before := make([]string, 0, lineNumber-1-start)
	for _, l := range lines[start : lineNumber-1] {
		before = append(before, rstrip(l))
	}
	after := make([]string, 0, end-lineNumber)
	for _, l := range lines[lineNumber:end] {
		after = append(after, rstrip(l))
	}

	return NewContextWindow(before, rstrip(lines[lineNumber-1]), after)
}

// Snippet returns a short stretch of the line around the span, trimmed
// of leading and trailing whitespace. Cut points are widened to rune
// boundaries so multi-byte characters survive intact.
func Snippet(line string, span Span) string {
	start := span.Start() - SnippetRadius
	if start < 0 {
		start = 0
	}
	end := span.End() + SnippetRadius
	if end > len(line) {
		end = len(line)
	}
	if start > len(line) {
		start = len(line)
	}

	for start > 0 && !utf8.RuneStart(line[start]) {
		start--
	}
	for end < len(line) && !utf8.RuneStart(line[end]) {
		end++
	}

	return strings.TrimSpace(line[start:end])
}

func rstrip(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
