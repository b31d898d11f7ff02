package knowledge

import "strings"

// Matcher finds literal keyword occurrences in text. For
// case-insensitive matching the line is folded to lowercase before
// scanning, so spans index the folded line and the matched text carries
// the folded form of the keyword.
type Matcher struct {
	keywords      []string
	needles       []string
	caseSensitive bool
}

// NewMatcher creates a Matcher for the given keywords.
func NewMatcher(keywords []string, caseSensitive bool) Matcher {
	kws := make([]string, len(keywords))
	copy(kws, keywords)

	needles := make([]string, len(kws))
	for i, kw := range kws {
		if caseSensitive {
			needles[i] = kw
		} else {
			needles[i] = strings.ToLower(kw)
		}
	}

	return Matcher{keywords: kws, needles: needles, caseSensitive: caseSensitive}
}

// Keywords returns the keywords this matcher scans for.
func (m Matcher) Keywords() []string {
	result := make([]string, len(m.keywords))
	copy(result, m.keywords)
	return result
}

// CaseSensitive reports whether matching honors letter case.
func (m Matcher) CaseSensitive() bool {
	return m.caseSensitive
}

// SearchText returns the text the matcher actually scans: the input
// itself, or its lowercase form for case-insensitive matching.
func (m Matcher) SearchText(text string) string {
	if m.caseSensitive {
		return text
	}
	return strings.ToLower(text)
}

// Scan returns every keyword occurrence in the given text, grouped by
// keyword in query order and left to right within each keyword.
// Occurrences of the same keyword do not overlap.
func (m Matcher) Scan(text string) []Span {
	haystack := m.SearchText(text)

	var spans []Span
	for i, needle := range m.needles {
		if needle == "" {
			continue
		}
		from := 0
		for {
			idx := strings.Index(haystack[from:], needle)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(needle)
			spans = append(spans, NewSpan(m.keywords[i], start, end, needle))
			from = end
		}
	}
	return spans
}

// CountOccurrences counts how often the keyword appears in the text.
// The count is always case-insensitive regardless of the matcher's
// case sensitivity; it feeds density scoring, which rewards repeated
// mentions of a term in any casing.
func CountOccurrences(text, keyword string) int {
	if keyword == "" {
		return 0
	}
	return strings.Count(strings.ToLower(text), strings.ToLower(keyword))
}
