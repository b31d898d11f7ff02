package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PureGoBackend extracts PDF text with a pure Go parser. It needs no
// external runtime, which makes it the fallback when pdfium cannot be
// initialized.
type PureGoBackend struct{}

// NewPureGoBackend creates a PureGoBackend.
func NewPureGoBackend() *PureGoBackend {
	return &PureGoBackend{}
}

// Name implements PDFBackend.
func (b *PureGoBackend) Name() string {
	return "purego"
}

// Extract implements PDFBackend.
func (b *PureGoBackend) Extract(ctx context.Context, path string) (text string, err error) {
	// The parser panics on some malformed files; turn that into an
	// error so the chain can fall through to the next backend.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read page %d: %w", i, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
