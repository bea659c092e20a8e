// Package embedding adapts a gollem LLM client to the
// EmbeddingProvider interface. A nil client is a valid configuration
// meaning the capability is unavailable.
package embedding

import (
	"context"

	"github.com/m-mizutani/gollem"
	"github.com/mnemo-lab/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
)

// Client wraps a gollem LLM client as an embedding provider
type Client struct {
	llm gollem.LLMClient
}

var _ interfaces.EmbeddingProvider = &Client{}

// New creates an embedding provider. A nil LLM client yields a
// provider that reports ErrProviderUnavailable on every call, so
// callers degrade instead of branching on nil.
func New(llm gollem.LLMClient) *Client {
	return &Client{llm: llm}
}

// Embed generates an embedding vector for the given text
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if c == nil || c.llm == nil {
		return nil, interfaces.ErrProviderUnavailable
	}

	embeddings, err := c.llm.GenerateEmbedding(ctx, model.EmbeddingDimension, []string{text})
	if err != nil {
		return nil, interfaces.ErrProviderUnavailable
	}
	if len(embeddings) == 0 || len(embeddings[0]) == 0 {
		return nil, interfaces.ErrProviderUnavailable
	}

	result := make([]float32, len(embeddings[0]))
	for i, v := range embeddings[0] {
		result[i] = float32(v)
	}

	return result, nil
}
