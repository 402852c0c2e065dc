package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/siherrmann/docsearch/helper"
	"github.com/siherrmann/docsearch/index"
	"github.com/siherrmann/docsearch/model"
)

// Ensure Index implements the interface.
var _ index.Index = (*Index)(nil)

// Index is the postgres-backed chunk index. Vector search runs on
// pgvector, keyword scoring runs in Go over an ILIKE candidate scan.
// Document removal cascades to chunks inside one transaction, so
// concurrent searches never observe a partially deleted document.
type Index struct {
	documents *DocumentsDBHandler
	chunks    *ChunksDBHandler
}

// NewIndex creates the postgres index with both table handlers
// initialized for the given embedding dimension
func NewIndex(db *helper.Database, embeddingDim int) (*Index, error) {
	documents, err := NewDocumentsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create documents handler", err)
	}

	chunks, err := NewChunksDBHandler(db, embeddingDim, false)
	if err != nil {
		return nil, helper.NewError("create chunks handler", err)
	}

	return &Index{
		documents: documents,
		chunks:    chunks,
	}, nil
}

// Add stores the document and its chunks. Chunks with a known RID are
// replaced through the upsert in insert_chunk.
func (x *Index) Add(_ context.Context, doc *model.Document, chunks []*model.Chunk) error {
	if doc.ID == 0 {
		if err := x.documents.InsertDocument(doc); err != nil {
			return err
		}
	} else {
		if err := x.documents.UpdateDocument(doc); err != nil {
			return err
		}
	}

	for i, chunk := range chunks {
		chunk.DocumentID = doc.ID
		if err := x.chunks.InsertChunk(chunk); err != nil {
			return helper.NewError(fmt.Sprintf("insert chunk %d", i), err)
		}
	}

	return nil
}

// Remove deletes the document and all its chunks
func (x *Index) Remove(_ context.Context, documentRID uuid.UUID) error {
	deleted, err := x.documents.DeleteDocument(documentRID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return helper.NewError("remove document", model.ErrDocumentNotFound)
	}
	return nil
}

// Document returns a single document by RID
func (x *Index) Document(_ context.Context, rid uuid.UUID) (*model.Document, error) {
	doc, err := x.documents.SelectDocument(rid)
	if err != nil {
		return nil, helper.NewError("select document", model.ErrDocumentNotFound)
	}
	return doc, nil
}

// Documents lists all stored documents
func (x *Index) Documents(_ context.Context) ([]*model.Document, error) {
	return x.documents.SelectAllDocuments()
}

// VectorSearch ranks chunks by pgvector cosine similarity, normalized
// into [0,1]
func (x *Index) VectorSearch(_ context.Context, embedding []float32, k int) ([]index.Hit, error) {
	chunks, similarities, err := x.chunks.SelectChunksBySimilarity(embedding, k)
	if err != nil {
		return nil, err
	}

	hits := make([]index.Hit, len(chunks))
	for i, chunk := range chunks {
		hits[i] = index.Hit{Chunk: chunk, Score: (1 + similarities[i]) / 2}
	}
	index.SortHits(hits)

	return hits, nil
}

// KeywordSearch narrows candidates with an ILIKE scan and applies the
// lexical scoring in Go, identical to the in-memory index
func (x *Index) KeywordSearch(_ context.Context, queryText string, keywords []string, minScore float64, k int) ([]index.Hit, error) {
	patterns := make([]string, 0, len(keywords)+1)
	for _, keyword := range keywords {
		patterns = append(patterns, "%"+keyword+"%")
	}
	if len(keywords) == 0 {
		patterns = append(patterns, "%"+queryText+"%")
	}

	chunks, err := x.chunks.SelectChunksByKeyword(patterns)
	if err != nil {
		return nil, err
	}

	var hits []index.Hit
	for _, chunk := range chunks {
		score := index.KeywordScore(chunk.Content, queryText, keywords)
		if score <= 0 || score < minScore {
			continue
		}
		hits = append(hits, index.Hit{Chunk: chunk, Score: score})
	}

	index.SortHits(hits)
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Neighbors returns up to window chunks before and after the given
// chunk within its document
func (x *Index) Neighbors(_ context.Context, chunk *model.Chunk, window int) ([]*model.Chunk, []*model.Chunk, error) {
	neighbors, err := x.chunks.SelectChunkNeighbors(chunk.DocumentRID, chunk.Sequence, window)
	if err != nil {
		return nil, nil, err
	}

	var before, after []*model.Chunk
	for _, neighbor := range neighbors {
		if neighbor.Sequence < chunk.Sequence {
			before = append(before, neighbor)
		} else {
			after = append(after, neighbor)
		}
	}

	return before, after, nil
}

// Stats returns document and chunk counts
func (x *Index) Stats(_ context.Context) (model.Stats, error) {
	documentCount, err := x.documents.CountDocuments()
	if err != nil {
		return model.Stats{}, err
	}
	chunkCount, err := x.chunks.CountChunks()
	if err != nil {
		return model.Stats{}, err
	}
	return model.Stats{DocumentCount: documentCount, ChunkCount: chunkCount}, nil
}

// ChangeIndexType switches the pgvector index between HNSW and IVFFlat
func (x *Index) ChangeIndexType(ctx context.Context, indexType string, params map[string]interface{}) error {
	return x.chunks.ChangeIndexType(ctx, indexType, params)
}
