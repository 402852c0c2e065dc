package retrieval

import (
	"context"
	"log/slog"

	"github.com/siherrmann/docsearch/core/pipeline"
	"github.com/siherrmann/docsearch/index"
	"github.com/siherrmann/docsearch/model"
)

// Engine orchestrates a single query: vector search with keyword
// fallback, context expansion and direct-answer extraction
type Engine struct {
	index  index.Index
	client *pipeline.EmbeddingClient
	config model.QueryConfig
	log    *slog.Logger
}

// NewEngine creates a new retrieval engine. The embedding client may
// be nil, which forces keyword search for every query.
func NewEngine(idx index.Index, client *pipeline.EmbeddingClient, config model.QueryConfig, logger *slog.Logger) *Engine {
	return &Engine{
		index:  idx,
		client: client,
		config: config,
		log:    logger,
	}
}

// Search returns ranked candidates for the query, ordered by score
// descending with deterministic tie-breaks. An empty result is a
// normal outcome, never an error.
func (e *Engine) Search(ctx context.Context, query *model.Query) ([]*model.Candidate, error) {
	stats, err := e.index.Stats(ctx)
	if err != nil {
		return nil, err
	}
	if stats.DocumentCount == 0 {
		return nil, nil
	}

	minScore := e.config.MinScore(query.Mode)
	keywords := query.Keywords()

	hits, method := e.vectorHits(ctx, query)
	if len(hits) == 0 {
		method = model.MatchMethodKeyword
		hits, err = e.index.KeywordSearch(ctx, query.Text, keywords, minScore, e.config.TopK)
		if err != nil {
			return nil, err
		}
	}

	factual := IsFactualQuery(query.Text)

	candidates := make([]*model.Candidate, 0, len(hits))
	for _, hit := range hits {
		if hit.Score < minScore {
			continue
		}

		candidate := &model.Candidate{
			Chunk:  hit.Chunk,
			Score:  hit.Score,
			Method: method,
		}

		before, after, err := e.index.Neighbors(ctx, hit.Chunk, e.config.ContextWindow)
		if err != nil {
			// The chunk may have been removed between search and
			// expansion, context is best-effort
			e.log.Debug("Context expansion failed", slog.String("error", err.Error()))
		} else {
			candidate.ContextBefore = before
			candidate.ContextAfter = after
		}

		if factual {
			candidate.DirectAnswer = ExtractRelevantSentence(query.Text, keywords, hit.Chunk.Content)
		}

		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

// vectorHits embeds the query and runs vector search. Any failure or
// an unavailable client yields no hits, which sends the query down the
// keyword path.
func (e *Engine) vectorHits(ctx context.Context, query *model.Query) ([]index.Hit, model.MatchMethod) {
	if e.client == nil || !e.client.Available() {
		return nil, model.MatchMethodKeyword
	}

	embedding, err := e.client.Embed(ctx, query.Text)
	if err != nil {
		e.log.Debug("Query embedding failed, falling back to keyword search",
			slog.String("error", err.Error()))
		return nil, model.MatchMethodKeyword
	}

	hits, err := e.index.VectorSearch(ctx, embedding, e.config.TopK)
	if err != nil {
		e.log.Debug("Vector search failed, falling back to keyword search",
			slog.String("error", err.Error()))
		return nil, model.MatchMethodKeyword
	}

	return hits, model.MatchMethodVector
}
