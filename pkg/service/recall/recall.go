// Package recall implements semantic recall: embedding a text query
// and ranking vector store entries by cosine similarity.
package recall

import (
	"context"
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-lab/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
)

// Service answers queries over the vector store
type Service struct {
	store    interfaces.VectorStore
	provider interfaces.EmbeddingProvider
}

var _ interfaces.SemanticRecall = &Service{}

// New creates a semantic recall service
func New(store interfaces.VectorStore, provider interfaces.EmbeddingProvider) *Service {
	return &Service{
		store:    store,
		provider: provider,
	}
}

// Recall embeds the query and returns the nearest entries as scored
// hits. An unavailable embedding provider surfaces as
// ErrProviderUnavailable so the caller can fall back.
func (s *Service) Recall(ctx context.Context, query string, limit int) ([]model.SearchHit, error) {
	if s.provider == nil {
		return nil, interfaces.ErrProviderUnavailable
	}

	embedding, err := s.provider.Embed(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed query")
	}

	entries, err := s.store.FindNearest(ctx, embedding, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "vector store search failed")
	}

	hits := make([]model.SearchHit, 0, len(entries))
	for _, e := range entries {
		hits = append(hits, model.SearchHit{
			Text:  e.Text,
			Score: cosineSimilarity(embedding, e.Embedding),
			Type:  e.Type,
		})
	}

	return hits, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	return dot / denom
}
