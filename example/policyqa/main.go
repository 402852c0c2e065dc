package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/siherrmann/docsearch"
	"github.com/siherrmann/docsearch/core/pipeline"
	"github.com/siherrmann/docsearch/core/retrieval"
	"github.com/siherrmann/docsearch/helper"
	"github.com/siherrmann/docsearch/model"
)

const policy = `Remote Work Policy

Employees may work remotely up to three days per week after their probation period.
Remote days must be approved by the direct manager at least one week in advance.

Equipment for the home office is provided once per employment and budgeted at 500 euros.
Requests above the budget require approval by the department head.

All remote work requires a stable connection and availability during core hours,
which run from ten in the morning to four in the afternoon.`

func main() {
	// Expects GEMINI_API_KEY in the environment or a local .env file
	_ = godotenv.Load()
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY is not set")
	}

	ctx := context.Background()

	logger := slog.New(helper.NewPrettyHandler(os.Stdout, helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: slog.LevelInfo},
	}))

	// Gemini embeddings for vector search over the policy text
	embedder, err := pipeline.GeminiEmbedder(ctx, apiKey, "text-embedding-004")
	if err != nil {
		log.Fatalf("Failed to create embedder: %v", err)
	}
	client := pipeline.NewEmbeddingClient(embedder, 768, 10*time.Second, logger)

	search := docsearch.NewDocSearch(client)
	defer search.Close()

	// Gemini also generates the final answers, grounded in the sources
	generator, err := retrieval.NewGeminiGenerator(ctx, apiKey, "gemini-2.0-flash")
	if err != nil {
		log.Fatalf("Failed to create generator: %v", err)
	}
	search.SetGenerator(generator)

	if _, err := search.Ingest(ctx, []byte(policy), "remote-work-policy.txt"); err != nil {
		log.Fatalf("Failed to ingest document: %v", err)
	}

	questions := []string{
		"How many days per week can employees work remotely",
		"What is the budget for home office equipment",
		"Summarize the remote work policy",
	}

	for _, question := range questions {
		mode := model.QueryModeRAG
		if retrieval.IsSummaryQuery(question) {
			mode = model.QueryModeSummary
		}

		response, err := search.Query(ctx, question, mode)
		if err != nil {
			log.Fatalf("Query failed: %v", err)
		}

		fmt.Printf("\nQ: %s\nA: %s\n", question, response.Answer.Answer)
		for _, source := range response.Answer.Sources {
			fmt.Printf("   source: %s page %d (score %.2f)\n", source.Filename, source.Page, source.Score)
		}
	}
}
