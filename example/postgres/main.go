package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/siherrmann/docsearch"
	"github.com/siherrmann/docsearch/core/pipeline"
	"github.com/siherrmann/docsearch/helper"
	"github.com/siherrmann/docsearch/model"
)

const handbook = `Welcome to the employee handbook. This document explains benefits and procedures.

The vacation policy grants 25 days per year to every employee.
Unused vacation days can be carried over into the first quarter.

Budget planning starts in October each year.
All departments submit their estimates before the planning meetings.`

func main() {
	// Start a test PostgreSQL container with pgvector
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	logger := slog.New(helper.NewPrettyHandler(os.Stdout, helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: slog.LevelInfo},
	}))

	// Local all-MiniLM-L6-v2 embeddings, 384 dimensions
	embedder, err := pipeline.HugotEmbedder()
	if err != nil {
		log.Fatalf("Failed to create embedder: %v", err)
	}
	client := pipeline.NewEmbeddingClient(embedder, pipeline.HugotDimension, 30*time.Second, logger)

	search, err := docsearch.NewDocSearchWithDatabase(dbConfig, client, pipeline.HugotDimension)
	if err != nil {
		log.Fatalf("Failed to create docsearch: %v", err)
	}
	defer search.Close()

	ctx := context.Background()

	fmt.Println("Ingesting document...")
	doc, err := search.Ingest(ctx, []byte(handbook), "handbook.txt")
	if err != nil {
		log.Fatalf("Failed to ingest document: %v", err)
	}
	fmt.Printf("Ingested %s with %d words\n", doc.Filename, doc.WordCount)

	response, err := search.Query(ctx, "how much vacation do employees get", model.QueryModeSearch)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	fmt.Printf("\nResults for %q:\n", response.Query)
	for _, match := range response.Matches {
		fmt.Printf("- [%.2f, %s] %s\n",
			match.Primary.Score, match.Primary.Method, match.Primary.Chunk.Content)
	}

	stats, err := search.Stats(ctx)
	if err != nil {
		log.Fatalf("Stats failed: %v", err)
	}
	fmt.Printf("\nIndexed %d documents, %d chunks\n", stats.DocumentCount, stats.ChunkCount)
}
