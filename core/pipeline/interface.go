package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/siherrmann/docsearch/extract"
	"github.com/siherrmann/docsearch/model"
)

// Segment is a retained text segment produced by a chunker before
// embedding. Start is the byte offset of the segment in the source text.
type Segment struct {
	Content string
	Page    int
	Start   int
}

// ChunkFunc is a function that splits extracted text into ordered segments
type ChunkFunc func(text string, pages []extract.PageBoundary) ([]Segment, error)

// EmbedFunc is a function that generates an embedding for text
type EmbedFunc func(text string) ([]float32, error)

// Pipeline combines chunking and embedding for document ingestion
type Pipeline struct {
	Chunker ChunkFunc
	Client  *EmbeddingClient
	// Maximum number of concurrent embedding calls per document
	Concurrency int
	log         *slog.Logger
}

// NewPipeline creates a new processing pipeline
func NewPipeline(chunker ChunkFunc, client *EmbeddingClient, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		Chunker:     chunker,
		Client:      client,
		Concurrency: model.DefaultIngestConfig().EmbedConcurrency,
		log:         logger,
	}
}

// Process chunks the extracted text and embeds each chunk with bounded
// concurrency. A failed embedding call leaves that chunk without a
// vector and never aborts the document; chunk order is fixed by
// sequence numbers before any embedding call is issued.
func (p *Pipeline) Process(ctx context.Context, text string, pages []extract.PageBoundary, doc *model.Document) ([]*model.Chunk, error) {
	segments, err := p.Chunker(text, pages)
	if err != nil {
		return nil, err
	}

	chunks := make([]*model.Chunk, len(segments))
	for i, segment := range segments {
		chunk := model.NewChunk(doc.RID, segment.Content, segment.Page, i+1)
		chunk.DocumentID = doc.ID
		chunk.Section = sectionLabel(i, len(segments))
		chunks[i] = chunk
	}

	if p.Client == nil || !p.Client.Available() {
		return chunks, nil
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range chunks {
		g.Go(func() error {
			embedding, err := p.Client.Embed(gctx, chunks[i].Content)
			if err != nil {
				p.log.Debug("Embedding failed for chunk, storing without vector",
					slog.Int("sequence", chunks[i].Sequence),
					slog.String("error", err.Error()))
				return nil
			}
			chunks[i].Embedding = embedding
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return chunks, nil
}
