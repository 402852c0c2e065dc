package model

import "time"

// QueryConfig represents configuration for a retrieval query
type QueryConfig struct {
	// Maximum number of candidates returned by a search
	TopK int `json:"top_k"`

	// Minimum acceptable keyword score per mode. RAG requires higher
	// confidence evidence since it feeds generated prose.
	MinScoreSearch float64 `json:"min_score_search"`
	MinScoreRAG    float64 `json:"min_score_rag"`

	// Number of chunks attached before and after each candidate
	ContextWindow int `json:"context_window"`

	// Budget for a single query embedding call before falling back
	// to keyword search
	EmbedTimeout time.Duration `json:"embed_timeout"`
}

// DefaultQueryConfig returns a sensible default configuration
func DefaultQueryConfig() QueryConfig {
	return QueryConfig{
		TopK:           5,
		MinScoreSearch: 0.3,
		MinScoreRAG:    0.4,
		ContextWindow:  2,
		EmbedTimeout:   10 * time.Second,
	}
}

// MinScore returns the inclusion threshold for the given mode
func (c *QueryConfig) MinScore(mode QueryMode) float64 {
	if mode == QueryModeRAG || mode == QueryModeSummary {
		return c.MinScoreRAG
	}
	return c.MinScoreSearch
}

// IngestConfig represents configuration for document ingestion
type IngestConfig struct {
	// Maximum accepted upload size in bytes
	MaxFileSize int64 `json:"max_file_size"`

	// Maximum number of concurrent embedding calls per document
	EmbedConcurrency int `json:"embed_concurrency"`
}

// DefaultIngestConfig returns a sensible default configuration
func DefaultIngestConfig() IngestConfig {
	return IngestConfig{
		MaxFileSize:      50 * 1024 * 1024,
		EmbedConcurrency: 4,
	}
}
