package knowledge

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBuildWindow_Middle(t *testing.T) {
	lines := []string{"one", "two", "three", "four", "five"}

	w := BuildWindow(lines, 3, 1)
	if len(w.Before()) != 1 || w.Before()[0] != "two" {
		t.Errorf("expected before [two], got %v", w.Before())
	}
	if w.Line() != "three" {
		t.Errorf("expected line three, got %q", w.Line())
	}
	if len(w.After()) != 1 || w.After()[0] != "four" {
		t.Errorf("expected after [four], got %v", w.After())
	}
}

func TestBuildWindow_ClampedAtStart(t *testing.T) {
	lines := []string{"one", "two", "three"}

	w := BuildWindow(lines, 1, 2)
	if len(w.Before()) != 0 {
		t.Errorf("expected no lines before, got %v", w.Before())
	}
	if got := w.After(); len(got) != 2 || got[0] != "two" || got[1] != "three" {
		t.Errorf("expected after [two three], got %v", got)
	}
}

func TestBuildWindow_ClampedAtEnd(t *testing.T) {
	lines := []string{"one", "two", "three"}

	w := BuildWindow(lines, 3, 2)
	if got := w.Before(); len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("expected before [one two], got %v", got)
	}
	if len(w.After()) != 0 {
		t.Errorf("expected no lines after, got %v", w.After())
	}
}

func TestBuildWindow_StripsTrailingWhitespace(t *testing.T) {
	lines := []string{"  before \t", "match  ", " after\n"}

	w := BuildWindow(lines, 2, 1)
	if w.Before()[0] != "  before" {
		t.Errorf("expected leading whitespace kept, got %q", w.Before()[0])
	}
	if w.Line() != "match" {
		t.Errorf("expected trailing whitespace removed, got %q", w.Line())
	}
	if w.After()[0] != " after" {
		t.Errorf("expected %q, got %q", " after", w.After()[0])
	}
}

func TestBuildWindow_ZeroContext(t *testing.T) {
	lines := []string{"one", "two", "three"}

	w := BuildWindow(lines, 2, 0)
	if len(w.Before()) != 0 || len(w.After()) != 0 {
		t.Errorf("expected empty context, got before=%v after=%v", w.Before(), w.After())
	}
	if w.Line() != "two" {
		t.Errorf("expected line two, got %q", w.Line())
	}
}

func TestBuildWindow_LineNumberOutOfRange(t *testing.T) {
	lines := []string{"one"}

	for _, n := range []int{0, 2, -1} {
		w := BuildWindow(lines, n, 1)
		if w.Line() != "" || len(w.Before()) != 0 || len(w.After()) != 0 {
			t.Errorf("line %d: expected an empty window", n)
		}
	}
}

func TestSnippet_Middle(t *testing.T) {
	line := strings.Repeat("x", 30) + "needle" + strings.Repeat("y", 30)
	span := NewSpan("needle", 30, 36, "needle")

	got := Snippet(line, span)
	want := strings.Repeat("x", 20) + "needle" + strings.Repeat("y", 20)
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSnippet_ClampedToLine(t *testing.T) {
	line := "short needle line"
	span := NewSpan("needle", 6, 12, "needle")

	if got := Snippet(line, span); got != line {
		t.Errorf("expected the whole line, got %q", got)
	}
}

func TestSnippet_Trimmed(t *testing.T) {
	line := "   needle   "
	span := NewSpan("needle", 3, 9, "needle")

	if got := Snippet(line, span); got != "needle" {
		t.Errorf("expected trimmed snippet, got %q", got)
	}
}

func TestSnippet_KeepsRunesIntact(t *testing.T) {
	// 30 two-byte runes put the cut points in the middle of a rune
	// unless the snippet widens to a boundary.
	line := strings.Repeat("é", 30)
	span := NewSpan("é", 31, 33, "é")

	got := Snippet(line, span)
	if !utf8.ValidString(got) {
		t.Errorf("expected a valid UTF-8 snippet, got %q", got)
	}
}
