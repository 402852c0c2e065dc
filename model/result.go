package model

// Candidate is a chunk scored against a specific query, with the
// surrounding chunks attached for human-readable context. Context
// chunks never affect the score.
type Candidate struct {
	Chunk         *Chunk      `json:"chunk"`
	Score         float64     `json:"score"`
	Method        MatchMethod `json:"method"`
	ContextBefore []*Chunk    `json:"context_before,omitempty"`
	ContextAfter  []*Chunk    `json:"context_after,omitempty"`
	DirectAnswer  string      `json:"direct_answer,omitempty"`
}

// MergedResult consolidates all candidates of one source document.
// Primary is the best-scoring candidate, AdditionalMatches keep their
// own scores and context and are never re-scored.
type MergedResult struct {
	Primary           *Candidate   `json:"primary"`
	AdditionalMatches []*Candidate `json:"additional_matches,omitempty"`
	TotalMatches      int          `json:"total_matches"`
}

// Source is a single citation attached to a synthesized answer
type Source struct {
	Filename string  `json:"filename"`
	Page     int     `json:"page"`
	Sequence int     `json:"sequence"`
	Score    float64 `json:"score"`
}

// RAGAnswer is a synthesized natural-language answer with the full
// list of sources that were considered, so callers can audit the
// evidence even when the prose is terse.
type RAGAnswer struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// QueryResponse is the result of a single pipeline query. Matches is
// populated in search mode, Answer in rag and summary mode.
type QueryResponse struct {
	Query   string          `json:"query"`
	Mode    QueryMode       `json:"mode"`
	Matches []*MergedResult `json:"matches,omitempty"`
	Answer  *RAGAnswer      `json:"answer,omitempty"`
}

// Stats is a point-in-time read of the index size
type Stats struct {
	DocumentCount int `json:"document_count"`
	ChunkCount    int `json:"chunk_count"`
}
