// Package mock provides a deterministic embedding provider for tests.
package mock

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/mnemo-lab/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
)

// Embedder generates deterministic hash-seeded embeddings so tests can
// rely on identical text producing identical vectors.
type Embedder struct {
	Calls int
	Fail  bool // report provider unavailable on every call
}

var _ interfaces.EmbeddingProvider = &Embedder{}

// New creates a mock embedder
func New() *Embedder {
	return &Embedder{}
}

// Embed creates a unit vector seeded from the text hash
func (m *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.Calls++
	if m.Fail {
		return nil, interfaces.ErrProviderUnavailable
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum64()

	embedding := make([]float32, model.EmbeddingDimension)
	for i := range embedding {
		seed = seed*6364136223846793005 + 1442695040888963407
		embedding[i] = float32(int64(seed)) / float32(math.MaxInt64)
	}

	return normalize(embedding), nil
}

func normalize(vec []float32) []float32 {
	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}

	norm = float32(math.Sqrt(float64(norm)))
	for i, v := range vec {
		vec[i] = v / norm
	}
	return vec
}
