package interfaces

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
)

// ErrProviderUnavailable marks an embedding or recall provider that is
// not configured or returned no result. It always degrades to a result
// flag, never a fatal response.
var ErrProviderUnavailable = goerr.New("provider unavailable")

// EmbeddingProvider generates fixed-length embedding vectors for text.
// Implementations return ErrProviderUnavailable when no backend is
// configured, so callers can degrade instead of failing.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
