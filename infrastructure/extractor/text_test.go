package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\nworld\n"), 0o644))

	content, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", content)
}

func TestReadText_DropsInvalidBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.txt")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 'h', 'i', 0xfe, '!'}, 0o644))

	content, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "hi!", content)
}

func TestReadText_MissingFile(t *testing.T) {
	_, err := ReadText(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestSplitLines_DropsBlankLines(t *testing.T) {
	lines := SplitLines("first\n\n   \nsecond\n\t\nthird\n")
	assert.Equal(t, []string{"first", "second", "third"}, lines)
}

func TestSplitLines_NormalizesNewlines(t *testing.T) {
	lines := SplitLines("one\r\ntwo\r\nthree")
	assert.Equal(t, []string{"one", "two", "three"}, lines)
}

func TestSplitLines_KeepsInnerWhitespace(t *testing.T) {
	lines := SplitLines("  indented line  \nplain")
	assert.Equal(t, []string{"  indented line  ", "plain"}, lines)
}

func TestSplitLines_Empty(t *testing.T) {
	assert.Empty(t, SplitLines(""))
	assert.Empty(t, SplitLines("\n\n\n"))
}
