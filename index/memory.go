package index

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/siherrmann/docsearch/helper"
	"github.com/siherrmann/docsearch/model"
)

// Ensure Memory implements the interface.
var _ Index = (*Memory)(nil)

// Memory is an in-memory index using brute-force similarity search.
// All operations run under one RWMutex, so searches always observe a
// consistent snapshot and a concurrent Remove is all-or-nothing.
type Memory struct {
	mu        sync.RWMutex
	documents map[uuid.UUID]*model.Document
	// chunks per document, ordered by ascending sequence
	docChunks map[uuid.UUID][]*model.Chunk
}

// NewMemory creates an empty in-memory index
func NewMemory() *Memory {
	return &Memory{
		documents: make(map[uuid.UUID]*model.Document),
		docChunks: make(map[uuid.UUID][]*model.Chunk),
	}
}

// Add stores the document and its chunks, replacing chunks whose RID
// is already present
func (m *Memory) Add(_ context.Context, doc *model.Document, chunks []*model.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.documents[doc.RID] = doc

	stored := m.docChunks[doc.RID]
	for _, chunk := range chunks {
		replaced := false
		for i, existing := range stored {
			if existing.RID == chunk.RID {
				stored[i] = chunk
				replaced = true
				break
			}
		}
		if !replaced {
			stored = append(stored, chunk)
		}
	}
	sort.Slice(stored, func(i, j int) bool { return stored[i].Sequence < stored[j].Sequence })
	m.docChunks[doc.RID] = stored

	return nil
}

// Remove deletes the document and all its chunks under the write lock
func (m *Memory) Remove(_ context.Context, documentRID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.documents[documentRID]; !ok {
		return helper.NewError("remove document", model.ErrDocumentNotFound)
	}
	delete(m.documents, documentRID)
	delete(m.docChunks, documentRID)

	return nil
}

// Document returns a single document by RID
func (m *Memory) Document(_ context.Context, rid uuid.UUID) (*model.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.documents[rid]
	if !ok {
		return nil, helper.NewError("select document", model.ErrDocumentNotFound)
	}
	return doc, nil
}

// Documents lists all stored documents ordered by RID
func (m *Memory) Documents(_ context.Context) ([]*model.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	documents := make([]*model.Document, 0, len(m.documents))
	for _, doc := range m.documents {
		documents = append(documents, doc)
	}
	sort.Slice(documents, func(i, j int) bool {
		return documents[i].RID.String() < documents[j].RID.String()
	})
	return documents, nil
}

// VectorSearch ranks all chunks carrying a vector by cosine similarity
func (m *Memory) VectorSearch(_ context.Context, embedding []float32, k int) ([]Hit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hits []Hit
	for _, chunks := range m.docChunks {
		for _, chunk := range chunks {
			if chunk.Embedding == nil {
				continue
			}
			hits = append(hits, Hit{Chunk: chunk, Score: CosineScore(embedding, chunk.Embedding)})
		}
	}

	SortHits(hits)
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// KeywordSearch ranks all chunks by lexical score, keeping only those
// at or above minScore
func (m *Memory) KeywordSearch(_ context.Context, queryText string, keywords []string, minScore float64, k int) ([]Hit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hits []Hit
	for _, chunks := range m.docChunks {
		for _, chunk := range chunks {
			score := KeywordScore(chunk.Content, queryText, keywords)
			if score <= 0 || score < minScore {
				continue
			}
			hits = append(hits, Hit{Chunk: chunk, Score: score})
		}
	}

	SortHits(hits)
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Neighbors returns up to window chunks before and after the given
// chunk within its document
func (m *Memory) Neighbors(_ context.Context, chunk *model.Chunk, window int) ([]*model.Chunk, []*model.Chunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	chunks, ok := m.docChunks[chunk.DocumentRID]
	if !ok {
		return nil, nil, helper.NewError("select neighbors", model.ErrDocumentNotFound)
	}

	position := -1
	for i, stored := range chunks {
		if stored.RID == chunk.RID {
			position = i
			break
		}
	}
	if position < 0 {
		return nil, nil, helper.NewError("select neighbors", model.ErrChunkNotFound)
	}

	start := position - window
	if start < 0 {
		start = 0
	}
	end := position + window + 1
	if end > len(chunks) {
		end = len(chunks)
	}

	before := append([]*model.Chunk{}, chunks[start:position]...)
	after := append([]*model.Chunk{}, chunks[position+1:end]...)

	return before, after, nil
}

// Stats returns document and chunk counts
func (m *Memory) Stats(_ context.Context) (model.Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := model.Stats{DocumentCount: len(m.documents)}
	for _, chunks := range m.docChunks {
		stats.ChunkCount += len(chunks)
	}
	return stats, nil
}
