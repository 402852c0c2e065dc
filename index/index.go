package index

import (
	"context"

	"github.com/google/uuid"

	"github.com/siherrmann/docsearch/model"
)

// Hit pairs a chunk with its relevance score in [0,1]
type Hit struct {
	Chunk *model.Chunk
	Score float64
}

// Index stores chunks and their optional vectors for the lifetime of
// the owning document and is the only structure queried at retrieval
// time. Implementations must give searches a consistent snapshot:
// a concurrent Remove is either fully visible or not at all.
type Index interface {
	// Add stores the document and its chunks. Idempotent per chunk
	// RID: re-adding a chunk replaces the stored one.
	Add(ctx context.Context, doc *model.Document, chunks []*model.Chunk) error

	// Remove deletes a document and all its chunks atomically.
	// Returns model.ErrDocumentNotFound for unknown documents.
	Remove(ctx context.Context, documentRID uuid.UUID) error

	// Document returns a single document by RID
	Document(ctx context.Context, rid uuid.UUID) (*model.Document, error)

	// Documents lists all stored documents
	Documents(ctx context.Context) ([]*model.Document, error)

	// VectorSearch ranks chunks that carry a vector by similarity to
	// the query embedding. Scores are normalized to [0,1], higher is
	// more relevant. Returns fewer than k hits if fewer vectors exist.
	VectorSearch(ctx context.Context, embedding []float32, k int) ([]Hit, error)

	// KeywordSearch ranks chunks by lexical score against the query.
	// Only chunks scoring at least minScore are returned.
	KeywordSearch(ctx context.Context, queryText string, keywords []string, minScore float64, k int) ([]Hit, error)

	// Neighbors returns up to window chunks before and after the given
	// chunk within its document, ordered by ascending sequence
	Neighbors(ctx context.Context, chunk *model.Chunk, window int) (before []*model.Chunk, after []*model.Chunk, err error)

	// Stats returns document and chunk counts
	Stats(ctx context.Context) (model.Stats, error)
}
