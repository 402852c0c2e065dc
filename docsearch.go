package docsearch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/siherrmann/docsearch/core/pipeline"
	"github.com/siherrmann/docsearch/core/retrieval"
	"github.com/siherrmann/docsearch/database"
	"github.com/siherrmann/docsearch/extract"
	"github.com/siherrmann/docsearch/helper"
	"github.com/siherrmann/docsearch/index"
	"github.com/siherrmann/docsearch/model"
	loadSql "github.com/siherrmann/docsearch/sql"
)

// DocSearch provides a unified interface to the full ingestion and
// retrieval pipeline
type DocSearch struct {
	Index       index.Index
	Pipeline    *pipeline.Pipeline
	Engine      *retrieval.Engine
	Synthesizer *retrieval.Synthesizer
	DB          *helper.Database // Set when backed by postgres
	// Configuration
	QueryConfig  model.QueryConfig
	IngestConfig model.IngestConfig
	// Extractors by file extension, plain text is the fallback
	pdf   *extract.PDF
	plain *extract.PlainText
	// Logging
	log *slog.Logger
}

// NewDocSearch creates a new DocSearch instance backed by the
// in-memory index. The embedding client may be nil, which runs every
// query through keyword search.
func NewDocSearch(client *pipeline.EmbeddingClient) *DocSearch {
	logger := newLogger()
	idx := index.NewMemory()
	return assemble(idx, client, nil, logger)
}

// NewDocSearchWithDatabase creates a new DocSearch instance backed by
// postgres with pgvector. embeddingDim fixes the vector column width
// and must match the embedding client's dimension.
func NewDocSearchWithDatabase(config *helper.DatabaseConfiguration, client *pipeline.EmbeddingClient, embeddingDim int) (*DocSearch, error) {
	logger := newLogger()

	db := helper.NewDatabase("docsearch", config, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	idx, err := database.NewIndex(db, embeddingDim)
	if err != nil {
		return nil, helper.NewError("create database index", err)
	}

	return assemble(idx, client, db, logger), nil
}

func newLogger() *slog.Logger {
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	return slog.New(helper.NewPrettyHandler(os.Stdout, opts))
}

func assemble(idx index.Index, client *pipeline.EmbeddingClient, db *helper.Database, logger *slog.Logger) *DocSearch {
	queryConfig := model.DefaultQueryConfig()
	return &DocSearch{
		Index:        idx,
		Pipeline:     pipeline.NewPipeline(pipeline.SentenceChunker(), client, logger),
		Engine:       retrieval.NewEngine(idx, client, queryConfig, logger),
		Synthesizer:  retrieval.NewSynthesizer(idx, logger),
		DB:           db,
		QueryConfig:  queryConfig,
		IngestConfig: model.DefaultIngestConfig(),
		pdf:          extract.NewPDF(),
		plain:        extract.NewPlainText(),
		log:          logger,
	}
}

// Close closes the database connection if one is open
func (d *DocSearch) Close() error {
	if d.DB != nil && d.DB.Instance != nil {
		return d.DB.Instance.Close()
	}
	return nil
}

// SetGenerator sets the optional answer generator used in rag and
// summary mode. Without a generator answers stay fully extractive.
func (d *DocSearch) SetGenerator(generator retrieval.Generator) {
	d.Synthesizer.SetGenerator(generator)
}

// Ingest processes an uploaded document by:
// 1. Rejecting uploads over the configured size limit
// 2. Extracting text and page boundaries based on the file extension
// 3. Chunking and embedding the text
// 4. Storing the document and its chunks in the index
// A document whose text cannot be extracted or chunked is stored with
// status failed and the failure reason, and the error is returned.
func (d *DocSearch) Ingest(ctx context.Context, content []byte, filename string) (*model.Document, error) {
	if int64(len(content)) > d.IngestConfig.MaxFileSize {
		return nil, helper.NewError("ingest document", model.ErrFileTooLarge)
	}

	doc := model.NewDocument(filename, int64(len(content)))

	text, pages, err := d.extractorFor(filename).Extract(ctx, content, filename)
	if err != nil {
		return d.failDocument(ctx, doc, err)
	}

	chunks, err := d.Pipeline.Process(ctx, text, pages, doc)
	if err != nil {
		return d.failDocument(ctx, doc, err)
	}

	wordCount := 0
	for _, chunk := range chunks {
		wordCount += chunk.WordCount
	}

	doc.PageCount = len(pages)
	doc.WordCount = wordCount
	doc.Status = model.DocumentStatusProcessed

	if err := d.Index.Add(ctx, doc, chunks); err != nil {
		return nil, helper.NewError("store document", err)
	}

	d.log.Info("Ingested document",
		slog.String("document_id", doc.RID.String()),
		slog.String("filename", doc.Filename),
		slog.Int("num_chunks", len(chunks)),
		slog.Int("word_count", doc.WordCount))

	return doc, nil
}

// IngestFile reads a file from disk and ingests it under its base name
func (d *DocSearch) IngestFile(ctx context.Context, path string) (*model.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, helper.NewError("read file", err)
	}
	return d.Ingest(ctx, content, filepath.Base(path))
}

// failDocument records a document that could not be processed. The
// stored document keeps the failure reason for later inspection.
func (d *DocSearch) failDocument(ctx context.Context, doc *model.Document, cause error) (*model.Document, error) {
	doc.Status = model.DocumentStatusFailed
	doc.FailReason = cause.Error()

	if err := d.Index.Add(ctx, doc, nil); err != nil {
		d.log.Warn("Failed to store failed document",
			slog.String("document_id", doc.RID.String()),
			slog.String("error", err.Error()))
	}

	d.log.Warn("Document processing failed",
		slog.String("document_id", doc.RID.String()),
		slog.String("filename", doc.Filename),
		slog.String("reason", doc.FailReason))

	return doc, helper.NewError("process document", cause)
}

func (d *DocSearch) extractorFor(filename string) extract.Extractor {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return d.pdf
	}
	return d.plain
}

// Query runs a single query in the given mode. Search mode returns
// per-document merged matches, rag and summary mode return a
// synthesized answer with sources. Querying an empty index returns
// model.ErrNoDocuments.
func (d *DocSearch) Query(ctx context.Context, text string, mode model.QueryMode) (*model.QueryResponse, error) {
	query, err := model.NewQuery(text, mode)
	if err != nil {
		return nil, helper.NewError("parse query", err)
	}

	stats, err := d.Index.Stats(ctx)
	if err != nil {
		return nil, helper.NewError("read index stats", err)
	}
	if stats.DocumentCount == 0 {
		return nil, helper.NewError("query documents", model.ErrNoDocuments)
	}

	candidates, err := d.Engine.Search(ctx, query)
	if err != nil {
		return nil, helper.NewError("search documents", err)
	}

	response := &model.QueryResponse{
		Query: query.Text,
		Mode:  query.Mode,
	}

	switch query.Mode {
	case model.QueryModeSearch:
		response.Matches = retrieval.Merge(candidates)
	default:
		answer, err := d.Synthesizer.Synthesize(ctx, query, candidates)
		if err != nil {
			return nil, helper.NewError("synthesize answer", err)
		}
		response.Answer = answer
	}

	return response, nil
}

// DeleteDocument removes a document and all its chunks from the index
func (d *DocSearch) DeleteDocument(ctx context.Context, rid uuid.UUID) error {
	if err := d.Index.Remove(ctx, rid); err != nil {
		return err
	}
	d.log.Info("Deleted document", slog.String("document_id", rid.String()))
	return nil
}

// Document returns a single stored document by RID
func (d *DocSearch) Document(ctx context.Context, rid uuid.UUID) (*model.Document, error) {
	return d.Index.Document(ctx, rid)
}

// Documents lists all stored documents
func (d *DocSearch) Documents(ctx context.Context) ([]*model.Document, error) {
	return d.Index.Documents(ctx)
}

// Stats returns document and chunk counts
func (d *DocSearch) Stats(ctx context.Context) (model.Stats, error) {
	return d.Index.Stats(ctx)
}
