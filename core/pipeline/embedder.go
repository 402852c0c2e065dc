package pipeline

import (
	"context"
	"fmt"

	"github.com/knights-analytics/hugot"
	"google.golang.org/genai"

	"github.com/siherrmann/docsearch/helper"
)

// HugotDimension is the vector length of the default local model
const HugotDimension = 384

// HugotEmbedder creates an embedder using a local sentence transformer
// model. Uses all-MiniLM-L6-v2 which produces 384-dimensional embeddings.
func HugotEmbedder() (EmbedFunc, error) {
	modelName := "sentence-transformers/all-MiniLM-L6-v2"
	modelPath, err := helper.PrepareModel(modelName, "onnx/model.onnx")
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "embedder-pipeline",
	}
	sentencePipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create sentence pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create sentence pipeline: %w", err)
	}

	return func(text string) ([]float32, error) {
		result, err := sentencePipeline.RunPipeline([]string{text})
		if err != nil {
			return nil, fmt.Errorf("failed to generate embedding: %w", err)
		}
		if len(result.Embeddings) == 0 {
			return nil, fmt.Errorf("no embedding generated")
		}
		return result.Embeddings[0], nil
	}, nil
}

// GeminiEmbedder creates an embedder backed by the Gemini embedding
// API, for deployments without a local model
func GeminiEmbedder(ctx context.Context, apiKey string, embeddingModel string) (EmbedFunc, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return func(text string) ([]float32, error) {
		resp, err := client.Models.EmbedContent(
			context.Background(),
			embeddingModel,
			[]*genai.Content{{Parts: []*genai.Part{{Text: text}}}},
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to generate embedding: %w", err)
		}
		if len(resp.Embeddings) == 0 {
			return nil, fmt.Errorf("no embedding values returned")
		}
		return resp.Embeddings[0].Values, nil
	}, nil
}
