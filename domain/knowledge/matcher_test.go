package knowledge

import (
	"testing"
)

func TestMatcher_Scan_CaseSensitive(t *testing.T) {
	m := NewMatcher([]string{"Err"}, true)

	spans := m.Scan("Err err Error")
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}

	if spans[0].Start() != 0 || spans[0].End() != 3 {
		t.Errorf("span[0]: expected [0,3), got [%d,%d)", spans[0].Start(), spans[0].End())
	}
	if spans[1].Start() != 8 {
		t.Errorf("span[1]: expected start 8, got %d", spans[1].Start())
	}
	for i, s := range spans {
		if s.Text() != "Err" {
			t.Errorf("span[%d]: expected text \"Err\", got %q", i, s.Text())
		}
		if s.Kind() != MatchWholeWord {
			t.Errorf("span[%d]: expected whole word match, got %q", i, s.Kind())
		}
	}
}

func TestMatcher_Scan_CaseInsensitive(t *testing.T) {
	m := NewMatcher([]string{"Err"}, false)

	spans := m.Scan("Err err Error")
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}

	// The scan runs over the folded line, so the matched text is the
	// folded keyword and differs from the original "Err".
	for i, s := range spans {
		if s.Text() != "err" {
			t.Errorf("span[%d]: expected text \"err\", got %q", i, s.Text())
		}
		if s.Keyword() != "Err" {
			t.Errorf("span[%d]: expected keyword \"Err\", got %q", i, s.Keyword())
		}
		if s.Kind() != MatchPartial {
			t.Errorf("span[%d]: expected partial match, got %q", i, s.Kind())
		}
	}
}

func TestMatcher_Scan_LowercaseKeywordIsWholeWord(t *testing.T) {
	m := NewMatcher([]string{"err"}, false)

	spans := m.Scan("Error")
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Kind() != MatchWholeWord {
		t.Errorf("expected whole word match, got %q", spans[0].Kind())
	}
}

func TestMatcher_Scan_NonOverlapping(t *testing.T) {
	m := NewMatcher([]string{"aa"}, true)

	spans := m.Scan("aaaa")
	if len(spans) != 2 {
		t.Fatalf("expected 2 non-overlapping spans, got %d", len(spans))
	}
	if spans[0].Start() != 0 || spans[1].Start() != 2 {
		t.Errorf("expected starts 0 and 2, got %d and %d", spans[0].Start(), spans[1].Start())
	}
}

func TestMatcher_Scan_KeywordOrder(t *testing.T) {
	m := NewMatcher([]string{"world", "hello"}, true)

	spans := m.Scan("hello world")
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}

	// Spans group by keyword in query order, not by position.
	if spans[0].Keyword() != "world" {
		t.Errorf("expected first span for \"world\", got %q", spans[0].Keyword())
	}
	if spans[1].Keyword() != "hello" {
		t.Errorf("expected second span for \"hello\", got %q", spans[1].Keyword())
	}
}

func TestMatcher_Scan_OverlappingKeywords(t *testing.T) {
	m := NewMatcher([]string{"low", "lower"}, true)

	spans := m.Scan("lower bound")
	if len(spans) != 2 {
		t.Fatalf("expected one span per keyword, got %d", len(spans))
	}

	if spans[0].Keyword() != "low" || spans[0].Start() != 0 {
		t.Errorf("span[0]: expected \"low\" at 0, got %q at %d", spans[0].Keyword(), spans[0].Start())
	}
	if spans[1].Keyword() != "lower" || spans[1].Start() != 0 {
		t.Errorf("span[1]: expected \"lower\" at 0, got %q at %d", spans[1].Keyword(), spans[1].Start())
	}
}

func TestMatcher_Scan_NoMatch(t *testing.T) {
	m := NewMatcher([]string{"missing"}, false)

	if spans := m.Scan("nothing to see here"); len(spans) != 0 {
		t.Errorf("expected no spans, got %d", len(spans))
	}
}

func TestMatcher_SearchText(t *testing.T) {
	sensitive := NewMatcher([]string{"x"}, true)
	if got := sensitive.SearchText("AbC"); got != "AbC" {
		t.Errorf("case-sensitive: expected unchanged text, got %q", got)
	}

	insensitive := NewMatcher([]string{"x"}, false)
	if got := insensitive.SearchText("AbC"); got != "abc" {
		t.Errorf("case-insensitive: expected folded text, got %q", got)
	}
}

func TestCountOccurrences_AlwaysCaseInsensitive(t *testing.T) {
	if got := CountOccurrences("Error ERROR error", "error"); got != 3 {
		t.Errorf("expected 3 occurrences, got %d", got)
	}
	if got := CountOccurrences("Error ERROR error", "ERROR"); got != 3 {
		t.Errorf("uppercase keyword: expected 3 occurrences, got %d", got)
	}
	if got := CountOccurrences("anything", ""); got != 0 {
		t.Errorf("empty keyword: expected 0, got %d", got)
	}
}
