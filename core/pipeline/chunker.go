package pipeline

import (
	"strings"

	"github.com/siherrmann/docsearch/extract"
	"github.com/siherrmann/docsearch/helper"
	"github.com/siherrmann/docsearch/model"
)

// minSegmentLength is the shortest trimmed segment kept as a chunk.
// Anything shorter is fragment noise from the extraction step.
const minSegmentLength = 10

// sectionLabels is the fixed ordered list of coarse section tags
// assigned by position quantile within the document
var sectionLabels = []string{"introduction", "background", "policy", "procedures", "appendix"}

// SentenceChunker creates a chunker that splits text into sentence-like
// segments on terminal punctuation. Segments shorter than ten
// characters after trimming are discarded. Page numbers are resolved
// from the boundary each segment starts in.
func SentenceChunker() ChunkFunc {
	return func(text string, pages []extract.PageBoundary) ([]Segment, error) {
		var segments []Segment

		start := 0
		for i, r := range text {
			if r == '.' || r == '!' || r == '?' {
				appendSegment(&segments, text[start:i+1], start, pages)
				start = i + 1
			}
		}
		// Trailing text without terminal punctuation is still a segment
		if start < len(text) {
			appendSegment(&segments, text[start:], start, pages)
		}

		if len(segments) == 0 {
			return nil, helper.NewError("chunk text", model.ErrNoExtractableText)
		}

		return segments, nil
	}
}

func appendSegment(segments *[]Segment, raw string, offset int, pages []extract.PageBoundary) {
	// Keep the offset pointing at the first retained character
	trimmedLeft := strings.TrimLeft(raw, " \t\n\r")
	offset += len(raw) - len(trimmedLeft)

	content := strings.TrimSpace(trimmedLeft)
	if len(content) < minSegmentLength {
		return
	}

	content = strings.Join(strings.Fields(content), " ")

	*segments = append(*segments, Segment{
		Content: content,
		Page:    pageForOffset(offset, pages),
		Start:   offset,
	})
}

// pageForOffset returns the 1-based page the offset falls within
func pageForOffset(offset int, pages []extract.PageBoundary) int {
	page := 1
	for _, boundary := range pages {
		if boundary.Start <= offset {
			page = boundary.Page
		} else {
			break
		}
	}
	return page
}

// sectionLabel assigns a coarse categorical tag by quantile of the
// segment position. Deterministic and language-agnostic.
func sectionLabel(index, total int) string {
	if total <= 0 {
		return sectionLabels[0]
	}
	bucket := index * len(sectionLabels) / total
	if bucket >= len(sectionLabels) {
		bucket = len(sectionLabels) - 1
	}
	return sectionLabels[bucket]
}
