package knowledge

// MatchKind classifies how a keyword occurrence relates to the matched
// text.
type MatchKind string

const (
	// MatchWholeWord means the matched span equals the keyword exactly.
	MatchWholeWord MatchKind = "whole_word"
	// MatchPartial means the matched span differs from the keyword,
	// which happens when case-insensitive matching folds letter case.
	MatchPartial MatchKind = "partial"
)

// Span is a single keyword occurrence within a line. Offsets are byte
// positions into the searched text; for case-insensitive matching that
// is the case-folded line.
type Span struct {
	keyword string
	start   int
	end     int
	text    string
}

// NewSpan creates a Span for the given keyword occurrence.
func NewSpan(keyword string, start, end int, text string) Span {
	return Span{keyword: keyword, start: start, end: end, text: text}
}

// Keyword returns the keyword as the caller supplied it.
func (s Span) Keyword() string {
	return s.keyword
}

// Start returns the byte offset where the occurrence begins.
func (s Span) Start() int {
	return s.start
}

// End returns the byte offset just past the occurrence.
func (s Span) End() int {
	return s.end
}

// Text returns the matched text as found in the searched line.
func (s Span) Text() string {
	return s.text
}

// Kind classifies the occurrence: whole word when the matched text
// equals the keyword verbatim, partial otherwise.
func (s Span) Kind() MatchKind {
	if s.text == s.keyword {
		return MatchWholeWord
	}
	return MatchPartial
}

// ContextWindow is the text surrounding a match: up to a fixed number
// of lines before and after, plus the matched line itself. All lines
// have trailing whitespace removed.
type ContextWindow struct {
	before []string
	line   string
	after  []string
}

// NewContextWindow creates a ContextWindow.
func NewContextWindow(before []string, line string, after []string) ContextWindow {
	b := make([]string, len(before))
	copy(b, before)
	a := make([]string, len(after))
	copy(a, after)
	return ContextWindow{before: b, line: line, after: a}
}

// Before returns the context lines preceding the match.
func (w ContextWindow) Before() []string {
	result := make([]string, len(w.before))
	copy(result, w.before)
	return result
}

// Line returns the matched line with trailing whitespace removed.
func (w ContextWindow) Line() string {
	return w.line
}

// After returns the context lines following the match.
func (w ContextWindow) After() []string {
	result := make([]string, len(w.after))
	copy(result, w.after)
	return result
}

// ContentMatch is one scored keyword occurrence in a file's content.
type ContentMatch struct {
	keyword     string
	lineNumber  int
	span        Span
	window      ContextWindow
	occurrences int
	score       float64
}

// NewContentMatch creates a ContentMatch. The line number is 1-based;
// occurrences is the case-insensitive count of the keyword on the whole
// line, used for density scoring.
func NewContentMatch(lineNumber int, span Span, window ContextWindow, occurrences int, score float64) ContentMatch {
	return ContentMatch{
		keyword:     span.Keyword(),
		lineNumber:  lineNumber,
		span:        span,
		window:      window,
		occurrences: occurrences,
		score:       score,
	}
}

// Keyword returns the keyword that produced this match.
func (m ContentMatch) Keyword() string {
	return m.keyword
}

// LineNumber returns the 1-based line number within the extracted
// content.
func (m ContentMatch) LineNumber() int {
	return m.lineNumber
}

// Span returns the occurrence position within the line.
func (m ContentMatch) Span() Span {
	return m.span
}

// Window returns the context surrounding the match.
func (m ContentMatch) Window() ContextWindow {
	return m.window
}

// Occurrences returns how many times the keyword appears on the line,
// counted case-insensitively.
func (m ContentMatch) Occurrences() int {
	return m.occurrences
}

// Score returns the relevance score in [0, 1].
func (m ContentMatch) Score() float64 {
	return m.score
}

// Kind classifies the match as whole word or partial.
func (m ContentMatch) Kind() MatchKind {
	return m.span.Kind()
}

// FileMatchKind says where a file-level match was found.
type FileMatchKind string

const (
	// FileMatchName is a keyword occurrence in the file name.
	FileMatchName FileMatchKind = "filename"
	// FileMatchContent is a keyword occurrence in the file content.
	FileMatchContent FileMatchKind = "content"
)

// FileMatch is one keyword occurrence found during a file-level search,
// either in the file name or in its content.
type FileMatch struct {
	kind       FileMatchKind
	keyword    string
	text       string
	position   int
	lineNumber int
	context    string
}

// NewNameMatch creates a FileMatch for a keyword occurrence in a file
// name at the given byte position.
func NewNameMatch(keyword, text string, position int) FileMatch {
	return FileMatch{kind: FileMatchName, keyword: keyword, text: text, position: position}
}

// NewContentFileMatch creates a FileMatch for a keyword occurrence in
// file content, with a short snippet of the surrounding line.
func NewContentFileMatch(keyword, text string, lineNumber int, context string) FileMatch {
	return FileMatch{kind: FileMatchContent, keyword: keyword, text: text, lineNumber: lineNumber, context: context}
}

// Kind returns where the match was found.
func (m FileMatch) Kind() FileMatchKind {
	return m.kind
}

// Keyword returns the keyword that produced this match.
func (m FileMatch) Keyword() string {
	return m.keyword
}

// Text returns the matched text.
func (m FileMatch) Text() string {
	return m.text
}

// Position returns the byte offset of a name match. It is zero for
// content matches.
func (m FileMatch) Position() int {
	return m.position
}

// LineNumber returns the 1-based line number of a content match. It is
// zero for name matches.
func (m FileMatch) LineNumber() int {
	return m.lineNumber
}

// Context returns the snippet around a content match. It is empty for
// name matches.
func (m FileMatch) Context() string {
	return m.context
}
