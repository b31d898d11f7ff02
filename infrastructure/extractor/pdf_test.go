package extractor

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assistant-mcp/knowd/domain/knowledge"
)

// fakeBackend is a scripted PDFBackend.
type fakeBackend struct {
	name   string
	text   string
	err    error
	called bool
}

func (f *fakeBackend) Name() string {
	return f.name
}

func (f *fakeBackend) Extract(_ context.Context, _ string) (string, error) {
	f.called = true
	return f.text, f.err
}

func TestPDFChain_FirstBackendWins(t *testing.T) {
	first := &fakeBackend{name: "first", text: "page text"}
	second := &fakeBackend{name: "second", text: "other text"}
	chain := NewPDFChain(nil, first, second)

	text, err := chain.Extract(context.Background(), "/kb/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "page text", text)
	assert.False(t, second.called)
}

func TestPDFChain_FallsThroughOnError(t *testing.T) {
	first := &fakeBackend{name: "first", err: errors.New("corrupt xref")}
	second := &fakeBackend{name: "second", text: "recovered text"}
	chain := NewPDFChain(nil, first, second)

	text, err := chain.Extract(context.Background(), "/kb/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "recovered text", text)
}

func TestPDFChain_FallsThroughOnEmptyText(t *testing.T) {
	first := &fakeBackend{name: "first", text: "   \n\t"}
	second := &fakeBackend{name: "second", text: "actual content"}
	chain := NewPDFChain(nil, first, second)

	text, err := chain.Extract(context.Background(), "/kb/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "actual content", text)
}

func TestPDFChain_AllBackendsFail(t *testing.T) {
	first := &fakeBackend{name: "first", err: errors.New("broken")}
	second := &fakeBackend{name: "second", text: ""}
	chain := NewPDFChain(nil, first, second)

	_, err := chain.Extract(context.Background(), "/kb/doc.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, knowledge.ErrUnsupportedFormat)
}

func TestPDFChain_BackendOrder(t *testing.T) {
	chain := DefaultPDFChain(nil)
	assert.Equal(t, []string{"pdfium", "purego", "pdftotext"}, chain.Backends())
}

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return m.output, m.err
}

func TestPdftotextBackend_WithMockRunner(t *testing.T) {
	// The PATH check happens before the runner is consulted.
	if _, err := exec.LookPath("pdftotext"); err != nil {
		t.Skip("pdftotext not in PATH, skipping mock runner test")
	}

	backend := NewPdftotextBackendWithRunner(&mockRunner{output: []byte("PDF Title\n\ncontent line\n")})

	text, err := backend.Extract(context.Background(), "/kb/doc.pdf")
	require.NoError(t, err)
	assert.Contains(t, text, "content line")
}

func TestPdftotextBackend_RunnerError(t *testing.T) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		t.Skip("pdftotext not in PATH, skipping runner error test")
	}

	backend := NewPdftotextBackendWithRunner(&mockRunner{err: errors.New("exit status 1")})

	_, err := backend.Extract(context.Background(), "/kb/doc.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext failed")
}

func TestPureGoBackend_OpenError(t *testing.T) {
	backend := NewPureGoBackend()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := backend.Extract(ctx, "/nonexistent/doc.pdf")
	assert.Error(t, err)
}
