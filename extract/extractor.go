package extract

import (
	"context"
	"strings"
)

// PageBoundary marks where a page begins in the extracted text.
// Page numbers are 1-based, Start is a byte offset into the text.
type PageBoundary struct {
	Page  int
	Start int
}

// Extractor converts raw uploaded bytes into plain text with page
// boundaries. Extraction services are external collaborators, so
// implementations wrap whatever tool produces the text.
type Extractor interface {
	Extract(ctx context.Context, content []byte, filename string) (string, []PageBoundary, error)
}

// Ensure PlainText implements the interface.
var _ Extractor = (*PlainText)(nil)

// PlainText handles text uploads directly. Form feed characters are
// treated as page separators, matching pdftotext output.
type PlainText struct{}

// NewPlainText creates a new plain text extractor
func NewPlainText() *PlainText {
	return &PlainText{}
}

// Extract returns the text content with one boundary per page
func (e *PlainText) Extract(_ context.Context, content []byte, _ string) (string, []PageBoundary, error) {
	return splitPages(string(content)), pageBoundaries(string(content)), nil
}

// splitPages normalizes page separators to single newlines
func splitPages(text string) string {
	return strings.ReplaceAll(text, "\f", "\n")
}

// pageBoundaries derives 1-based page boundaries from form feed
// separators. Text without separators is a single page.
func pageBoundaries(text string) []PageBoundary {
	boundaries := []PageBoundary{{Page: 1, Start: 0}}
	for i, r := range text {
		if r == '\f' {
			boundaries = append(boundaries, PageBoundary{
				Page:  len(boundaries) + 1,
				Start: i + 1,
			})
		}
	}
	return boundaries
}
