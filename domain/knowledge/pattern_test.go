package knowledge

import "testing"

func TestPatternSet_Substring(t *testing.T) {
	set := CompilePatterns([]string{".txt"})

	if !set.Matches("notes.txt") {
		t.Error("expected \".txt\" to match notes.txt")
	}
	if !set.Matches("NOTES.TXT") {
		t.Error("expected matching to be case-insensitive")
	}
	if !set.Matches("a.txt.bak") {
		t.Error("expected substring match anywhere in the name")
	}
	if set.Matches("notes.md") {
		t.Error("expected no match for notes.md")
	}
}

func TestPatternSet_SubstringIsLiteral(t *testing.T) {
	set := CompilePatterns([]string{"a.b"})

	if !set.Matches("xa.by") {
		t.Error("expected literal substring match")
	}
	if set.Matches("axb") {
		t.Error("the dot must not act as a regex wildcard")
	}
}

func TestPatternSet_Wildcard(t *testing.T) {
	set := CompilePatterns([]string{"*.md"})

	if !set.Matches("readme.md") {
		t.Error("expected *.md to match readme.md")
	}
	// Wildcard patterns anchor at the start of the name but not the
	// end, so a longer extension still matches.
	if !set.Matches("readme.mdx") {
		t.Error("expected *.md to match readme.mdx as a prefix")
	}
	if set.Matches("readme.txt") {
		t.Error("expected no match for readme.txt")
	}
}

func TestPatternSet_WildcardAnchoredAtStart(t *testing.T) {
	set := CompilePatterns([]string{"draft*final"})

	if !set.Matches("draft-v2-final.txt") {
		t.Error("expected match with wildcard in the middle")
	}
	if set.Matches("my-draft-final.txt") {
		t.Error("expected no match when the prefix does not align")
	}
}

func TestPatternSet_AnyPatternSelects(t *testing.T) {
	set := CompilePatterns([]string{".txt", "*.md"})

	if !set.Matches("readme.md") {
		t.Error("expected the wildcard pattern to select")
	}
	if !set.Matches("notes.txt") {
		t.Error("expected the substring pattern to select")
	}
}

func TestPatternSet_BlankPatternsIgnored(t *testing.T) {
	set := CompilePatterns([]string{"", "  ", ".txt"})

	if set.Empty() {
		t.Fatal("expected a non-empty set")
	}
	if !set.Matches("a.txt") {
		t.Error("expected the remaining pattern to match")
	}

	empty := CompilePatterns([]string{"", "   "})
	if !empty.Empty() {
		t.Error("expected an empty set from blank patterns")
	}
}
