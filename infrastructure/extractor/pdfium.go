package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
)

const pdfiumInstanceTimeout = 30 * time.Second

// PdfiumBackend extracts PDF text through the pdfium library compiled
// to WebAssembly. The runtime is initialized once on first use and
// shared by all extractions.
type PdfiumBackend struct {
	once    sync.Once
	pool    pdfium.Pool
	initErr error
}

// NewPdfiumBackend creates a PdfiumBackend. Initialization is deferred
// until the first extraction.
func NewPdfiumBackend() *PdfiumBackend {
	return &PdfiumBackend{}
}

// Name implements PDFBackend.
func (b *PdfiumBackend) Name() string {
	return "pdfium"
}

// Extract implements PDFBackend.
func (b *PdfiumBackend) Extract(ctx context.Context, path string) (string, error) {
	b.once.Do(func() {
		b.pool, b.initErr = webassembly.Init(webassembly.Config{
			MinIdle:  1,
			MaxIdle:  1,
			MaxTotal: 1,
		})
	})
	if b.initErr != nil {
		return "", fmt.Errorf("init pdfium runtime: %w", b.initErr)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	instance, err := b.pool.GetInstance(pdfiumInstanceTimeout)
	if err != nil {
		return "", fmt.Errorf("get pdfium instance: %w", err)
	}
	defer instance.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	doc, err := instance.OpenDocument(&requests.OpenDocument{File: &data})
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer func() {
		_, _ = instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: doc.Document})
	}()

	pageCount, err := instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{Document: doc.Document})
	if err != nil {
		return "", fmt.Errorf("get page count: %w", err)
	}

	var sb strings.Builder
	for i := 0; i < pageCount.PageCount; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		pageText, err := instance.GetPageText(&requests.GetPageText{
			Page: requests.Page{
				ByIndex: &requests.PageByIndex{Document: doc.Document, Index: i},
			},
		})
		if err != nil {
			return "", fmt.Errorf("read page %d: %w", i+1, err)
		}
		sb.WriteString(pageText.Text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
