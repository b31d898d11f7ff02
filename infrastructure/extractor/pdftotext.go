package extractor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrPDFToolNotFound is returned when the pdftotext binary is not in
// PATH.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH (install poppler: brew install poppler / apt install poppler-utils)")

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// PdftotextBackend extracts PDF text by shelling out to the pdftotext
// tool from poppler. It is the last resort of the backend chain.
type PdftotextBackend struct {
	runner CommandRunner
}

// NewPdftotextBackend creates a PdftotextBackend that runs the real
// binary.
func NewPdftotextBackend() *PdftotextBackend {
	return &PdftotextBackend{runner: execRunner{}}
}

// NewPdftotextBackendWithRunner creates a PdftotextBackend with a
// custom runner. Tests use this to avoid invoking the binary.
func NewPdftotextBackendWithRunner(runner CommandRunner) *PdftotextBackend {
	return &PdftotextBackend{runner: runner}
}

// Name implements PDFBackend.
func (b *PdftotextBackend) Name() string {
	return "pdftotext"
}

// Extract implements PDFBackend.
func (b *PdftotextBackend) Extract(ctx context.Context, path string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", ErrPDFToolNotFound
	}

	out, err := b.runner.Run(ctx, "pdftotext", "-layout", path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return string(out), nil
}
