package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/docsearch"
	"github.com/siherrmann/docsearch/model"
)

const handbook = `Welcome to the employee handbook. This document explains benefits and procedures.

The vacation policy grants 25 days per year to every employee.
Unused vacation days can be carried over into the first quarter.

Budget planning starts in October each year.
All departments submit their estimates before the planning meetings.`

func main() {
	// No embedding client: every query runs through keyword search
	search := docsearch.NewDocSearch(nil)
	defer search.Close()

	ctx := context.Background()

	fmt.Println("Ingesting document...")
	doc, err := search.Ingest(ctx, []byte(handbook), "handbook.txt")
	if err != nil {
		log.Fatalf("Failed to ingest document: %v", err)
	}
	fmt.Printf("Ingested %s: %d words in %d pages\n", doc.Filename, doc.WordCount, doc.PageCount)

	// Search mode: ranked matches merged per document
	response, err := search.Query(ctx, "vacation days", model.QueryModeSearch)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}
	fmt.Printf("\nSearch results for %q:\n", response.Query)
	for _, match := range response.Matches {
		fmt.Printf("- [%.2f] %s (%d matches in document)\n",
			match.Primary.Score, match.Primary.Chunk.Content, match.TotalMatches)
	}

	// A factual question gets a direct answer extracted from the chunk
	response, err = search.Query(ctx, "When does budget planning begin", model.QueryModeSearch)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}
	if len(response.Matches) > 0 && response.Matches[0].Primary.DirectAnswer != "" {
		fmt.Printf("\nDirect answer: %s\n", response.Matches[0].Primary.DirectAnswer)
	}

	// RAG mode without a generator: extractive answer with sources
	response, err = search.Query(ctx, "How many vacation days do employees get", model.QueryModeRAG)
	if err != nil {
		log.Fatalf("RAG query failed: %v", err)
	}
	fmt.Printf("\nAnswer:\n%s\n", response.Answer.Answer)
	for _, source := range response.Answer.Sources {
		fmt.Printf("  source: %s page %d (score %.2f)\n", source.Filename, source.Page, source.Score)
	}
}
