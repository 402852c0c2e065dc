package model

import "errors"

// Error taxonomy surfaced by the pipeline. Chunk-level embedding
// failures are absorbed internally and never reach the caller; an
// empty result set is a normal outcome, not an error.
var (
	ErrNoExtractableText    = errors.New("no extractable text")
	ErrFileTooLarge         = errors.New("file exceeds size limit")
	ErrEmptyQuery           = errors.New("query text is empty")
	ErrUnsupportedMode      = errors.New("unsupported query mode")
	ErrNoDocuments          = errors.New("no documents indexed")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrChunkNotFound        = errors.New("chunk not found")
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")
)
