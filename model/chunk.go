package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type MatchMethod string

const (
	MatchMethodVector  MatchMethod = "vector"
	MatchMethodKeyword MatchMethod = "keyword"
)

// Chunk represents one indexed unit of document text.
// Sequence is the 1-based order of the chunk within its document and
// defines before/after adjacency for context expansion. Chunks are
// immutable after creation.
type Chunk struct {
	ID          int       `json:"id"`
	RID         uuid.UUID `json:"rid"`
	DocumentID  int64     `json:"document_id"`
	DocumentRID uuid.UUID `json:"document_rid"`
	Content     string    `json:"content"`
	Page        int       `json:"page"`
	Sequence    int       `json:"sequence"`
	WordCount   int       `json:"word_count"`
	Embedding   []float32 `json:"embedding,omitempty"`
	Section     string    `json:"section,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewChunk creates a chunk with a fresh RID and derived word count.
func NewChunk(documentRID uuid.UUID, content string, page, sequence int) *Chunk {
	return &Chunk{
		RID:         uuid.New(),
		DocumentRID: documentRID,
		Content:     content,
		Page:        page,
		Sequence:    sequence,
		WordCount:   len(strings.Fields(content)),
		Metadata:    Metadata{},
	}
}
