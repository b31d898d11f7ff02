package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/assistant-mcp/knowd/domain/knowledge"
)

// PDFBackend extracts plain text from a PDF file.
type PDFBackend interface {
	Name() string
	Extract(ctx context.Context, path string) (string, error)
}

// PDFChain tries a sequence of PDF backends in order until one yields
// text. A backend that errors or produces only whitespace falls through
// to the next one.
type PDFChain struct {
	backends []PDFBackend
	logger   *slog.Logger
}

// NewPDFChain creates a PDFChain over the given backends.
func NewPDFChain(logger *slog.Logger, backends ...PDFBackend) *PDFChain {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFChain{backends: backends, logger: logger}
}

// DefaultPDFChain builds the standard backend order. It tries the
// pdfium runtime, then the pure Go parser, then the pdftotext tool.
func DefaultPDFChain(logger *slog.Logger) *PDFChain {
	return NewPDFChain(logger,
		NewPdfiumBackend(),
		NewPureGoBackend(),
		NewPdftotextBackend(),
	)
}

// Backends returns the names of the configured backends in order.
func (c *PDFChain) Backends() []string {
	names := make([]string, 0, len(c.backends))
	for _, b := range c.backends {
		names = append(names, b.Name())
	}
	return names
}

// Extract returns the text of the PDF at path, or an error when every
// backend fails.
func (c *PDFChain) Extract(ctx context.Context, path string) (string, error) {
	for _, backend := range c.backends {
		text, err := backend.Extract(ctx, path)
		if err != nil {
			c.logger.Warn("pdf backend failed",
				slog.String("backend", backend.Name()),
				slog.String("file", filepath.Base(path)),
				slog.String("error", err.Error()),
			)
			continue
		}
		if strings.TrimSpace(text) == "" {
			c.logger.Warn("pdf backend produced no text",
				slog.String("backend", backend.Name()),
				slog.String("file", filepath.Base(path)),
			)
			continue
		}

		c.logger.Debug("pdf text extracted",
			slog.String("backend", backend.Name()),
			slog.String("file", filepath.Base(path)),
			slog.Int("chars", len(text)),
		)
		return text, nil
	}

	return "", fmt.Errorf("extract %s: %w", filepath.Base(path), knowledge.ErrUnsupportedFormat)
}
