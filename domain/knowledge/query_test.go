package knowledge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeywords(t *testing.T) {
	assert.Equal(t, []string{"hello", "world"}, ParseKeywords("  hello   world "))
	assert.Empty(t, ParseKeywords("   "))
}

func TestNewContentQuery(t *testing.T) {
	q, err := NewContentQuery(" hello  world ", []string{".md", ".txt"}, 2, false, 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"hello", "world"}, q.Keywords())
	assert.Equal(t, []string{".md", ".txt"}, q.FilePatterns())
	assert.Equal(t, 2, q.ContextLines())
	assert.False(t, q.CaseSensitive())
	assert.Equal(t, 5, q.MaxPerFile())
}

func TestNewContentQuery_EmptyKeywords(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := NewContentQuery(raw, []string{".md"}, 2, false, 5)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidQuery))

		var qe *QueryError
		require.ErrorAs(t, err, &qe)
		assert.Equal(t, CodeEmptyKeywords, qe.Code())
	}
}

func TestNewContentQuery_EmptyFilePatterns(t *testing.T) {
	cases := [][]string{nil, {}, {""}, {"  ", "\t"}}
	for _, patterns := range cases {
		_, err := NewContentQuery("hello", patterns, 2, false, 5)
		require.Error(t, err)

		var qe *QueryError
		require.ErrorAs(t, err, &qe)
		assert.Equal(t, CodeEmptyFilePatterns, qe.Code())
	}
}

func TestNewContentQuery_DropsBlankPatterns(t *testing.T) {
	q, err := NewContentQuery("hello", []string{"", ".md", "  "}, 2, false, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{".md"}, q.FilePatterns())
}

func TestNewContentQuery_ClampsNegativeValues(t *testing.T) {
	q, err := NewContentQuery("hello", []string{".md"}, -1, false, -3)
	require.NoError(t, err)
	assert.Equal(t, 0, q.ContextLines())
	assert.Equal(t, 0, q.MaxPerFile())
}

func TestNewFileQuery(t *testing.T) {
	q, err := NewFileQuery("report summary", []string{"PDF", ".Txt", " md "}, 10, true, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"report", "summary"}, q.Keywords())
	assert.Equal(t, []string{".pdf", ".txt", ".md"}, q.FileTypes())
	assert.Equal(t, 10, q.MaxResults())
	assert.True(t, q.SearchContent())
	assert.False(t, q.CaseSensitive())
}

func TestNewFileQuery_EmptyKeywords(t *testing.T) {
	_, err := NewFileQuery("  ", nil, 10, false, false)
	require.Error(t, err)

	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, CodeEmptyKeywords, qe.Code())
}

func TestFileQuery_AllowsType(t *testing.T) {
	q, err := NewFileQuery("report", []string{".pdf", "txt"}, 10, false, false)
	require.NoError(t, err)

	assert.True(t, q.AllowsType(".pdf"))
	assert.True(t, q.AllowsType(".PDF"))
	assert.True(t, q.AllowsType("txt"))
	assert.False(t, q.AllowsType(".md"))
	assert.False(t, q.AllowsType(""))

	unfiltered, err := NewFileQuery("report", nil, 10, false, false)
	require.NoError(t, err)
	assert.True(t, unfiltered.AllowsType(".anything"))
	assert.True(t, unfiltered.AllowsType(""))
}

func TestQueryError(t *testing.T) {
	err := NewQueryError(CodeDirectoryNotFound, "no such directory: /tmp/missing")

	assert.Equal(t, CodeDirectoryNotFound, err.Code())
	assert.Equal(t, "no such directory: /tmp/missing", err.Message())
	assert.Equal(t, "directory_not_found: no such directory: /tmp/missing", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidQuery))
}
