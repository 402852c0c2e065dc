package extract

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrPDFToolNotFound is returned when the pdftotext binary is not installed
var ErrPDFToolNotFound = errors.New("pdftotext not found, install poppler-utils")

// CommandRunner executes an external command and returns its output.
// It exists so tests can substitute the pdftotext invocation.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Ensure PDF implements the interface.
var _ Extractor = (*PDF)(nil)

// PDF extracts text from PDF uploads by shelling out to pdftotext.
// The tool emits form feed characters between pages, which become the
// page boundaries.
type PDF struct {
	runner CommandRunner
}

// NewPDF creates a PDF extractor using the system pdftotext binary
func NewPDF() *PDF {
	return &PDF{runner: execRunner{}}
}

// NewPDFWithRunner creates a PDF extractor with a custom command runner
func NewPDFWithRunner(runner CommandRunner) *PDF {
	return &PDF{runner: runner}
}

// Extract writes the upload to a temporary file and converts it with
// pdftotext, reading the result from stdout
func (e *PDF) Extract(ctx context.Context, content []byte, filename string) (string, []PageBoundary, error) {
	tmp, err := os.CreateTemp("", "docsearch-*"+filepath.Ext(filename))
	if err != nil {
		return "", nil, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", nil, err
	}
	if err := tmp.Close(); err != nil {
		return "", nil, err
	}

	out, err := e.runner.Run(ctx, "pdftotext", "-layout", tmp.Name(), "-")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", nil, ErrPDFToolNotFound
		}
		return "", nil, err
	}

	text := string(out)
	return splitPages(text), pageBoundaries(text), nil
}
