package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/assistant-mcp/knowd/domain/knowledge"
)

// Extractor resolves a file to its searchable lines using the profile
// registry: text formats are read directly, PDFs go through the backend
// chain.
type Extractor struct {
	registry *Registry
	pdf      *PDFChain
	logger   *slog.Logger
}

// New creates an Extractor. A nil registry loads the embedded profiles
// and a nil chain uses the default backend order.
func New(registry *Registry, pdf *PDFChain, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if registry == nil {
		registry = MustRegistry()
	}
	if pdf == nil {
		pdf = DefaultPDFChain(logger)
	}
	return &Extractor{registry: registry, pdf: pdf, logger: logger}
}

// Lines returns the searchable lines of the file at path. Blank lines
// are dropped, so line numbers in search results index this slice.
func (e *Extractor) Lines(ctx context.Context, candidate knowledge.FileCandidate) ([]string, error) {
	profile := e.registry.Lookup(candidate.Ext())

	var content string
	var err error
	switch profile.Reader {
	case ReaderPDF:
		content, err = e.pdf.Extract(ctx, candidate.Path())
	default:
		content, err = ReadText(candidate.Path())
	}
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filepath.Base(candidate.Path()), err)
	}

	return SplitLines(content), nil
}

// ScansContent reports whether file-level search reads the content of
// files with the given extension.
func (e *Extractor) ScansContent(ext string) bool {
	return e.registry.ScansContent(ext)
}
