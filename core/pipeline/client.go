package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/siherrmann/docsearch/helper"
	"github.com/siherrmann/docsearch/model"
)

// EmbeddingClient wraps an external embedding provider. Availability
// is probed once at construction and cached, so a dead provider costs
// one failed round-trip total instead of one per query.
type EmbeddingClient struct {
	embed     EmbedFunc
	dimension int
	timeout   time.Duration
	available bool
	log       *slog.Logger
}

// NewEmbeddingClient creates a client around the given embed function
// and probes it once. A nil function or failed probe puts the client
// into degraded mode, logged a single time here.
func NewEmbeddingClient(embed EmbedFunc, dimension int, timeout time.Duration, logger *slog.Logger) *EmbeddingClient {
	client := &EmbeddingClient{
		embed:     embed,
		dimension: dimension,
		timeout:   timeout,
		log:       logger,
	}

	if embed == nil {
		logger.Warn("No embedding provider configured, queries use keyword search only")
		return client
	}

	if _, err := client.call(context.Background(), "availability probe"); err != nil {
		logger.Warn("Embedding provider unavailable, queries fall back to keyword search",
			slog.String("error", err.Error()))
		return client
	}

	client.available = true
	logger.Info("Embedding provider available", slog.Int("dimension", dimension))

	return client
}

// Available reports the cached availability state
func (c *EmbeddingClient) Available() bool {
	return c.available
}

// Dimension returns the fixed embedding vector length
func (c *EmbeddingClient) Dimension() int {
	return c.dimension
}

// Embed converts text to a fixed-dimension vector. It returns
// ErrEmbeddingUnavailable without calling the provider when the client
// is in degraded mode.
func (c *EmbeddingClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if !c.available {
		return nil, helper.NewError("embed", model.ErrEmbeddingUnavailable)
	}
	return c.call(ctx, text)
}

type embedResult struct {
	embedding []float32
	err       error
}

// call runs the provider within the configured budget. Provider calls
// have no context of their own, so an overrun leaves the goroutine to
// finish in the background and its result is discarded.
func (c *EmbeddingClient) call(ctx context.Context, text string) ([]float32, error) {
	timeout := c.timeout
	if timeout <= 0 {
		timeout = model.DefaultQueryConfig().EmbedTimeout
	}

	results := make(chan embedResult, 1)
	go func() {
		embedding, err := c.embed(text)
		results <- embedResult{embedding: embedding, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, helper.NewError("embed", ctx.Err())
	case <-timer.C:
		return nil, helper.NewError("embed", fmt.Errorf("embedding call exceeded budget of %v", timeout))
	case result := <-results:
		if result.err != nil {
			return nil, helper.NewError("embed", result.err)
		}
		if len(result.embedding) != c.dimension {
			return nil, helper.NewError("embed", fmt.Errorf("expected %d dimensions, got %d", c.dimension, len(result.embedding)))
		}
		return result.embedding, nil
	}
}
