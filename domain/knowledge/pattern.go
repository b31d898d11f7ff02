package knowledge

import (
	"regexp"
	"strings"
)

// PatternSet matches file names against a list of name patterns.
// Matching is case-insensitive. A pattern without wildcards matches as
// a substring of the file name; a pattern containing '*' matches any
// run of characters at that spot and is anchored at the start of the
// name.
type PatternSet struct {
	substrings []string
	wildcards  []*regexp.Regexp
}

// CompilePatterns builds a PatternSet. Blank patterns are ignored.
func CompilePatterns(patterns []string) PatternSet {
	var set PatternSet
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if strings.Contains(p, "*") {
			parts := strings.Split(p, "*")
			for i, part := range parts {
				parts[i] = regexp.QuoteMeta(part)
			}
			set.wildcards = append(set.wildcards, regexp.MustCompile("^"+strings.Join(parts, ".*")))
		} else {
			set.substrings = append(set.substrings, p)
		}
	}
	return set
}

// Empty reports whether the set contains no usable patterns.
func (s PatternSet) Empty() bool {
	return len(s.substrings) == 0 && len(s.wildcards) == 0
}

// Matches reports whether the file name satisfies at least one pattern.
func (s PatternSet) Matches(name string) bool {
	name = strings.ToLower(name)
	for _, sub := range s.substrings {
		if strings.Contains(name, sub) {
			return true
		}
	}
	for _, re := range s.wildcards {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
