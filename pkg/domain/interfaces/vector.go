package interfaces

import (
	"context"

	"github.com/mnemo-lab/mnemo/pkg/domain/model"
)

// VectorStore defines the interface for the external vector store. The
// indexer is the sole writer; search reads through SemanticRecall.
type VectorStore interface {
	// Insert adds or replaces an entry. Entry IDs are stable per source
	// identity, so inserting again after a content change updates in place.
	Insert(ctx context.Context, entry *model.VectorEntry) error

	// GetAll returns every stored entry
	GetAll(ctx context.Context) ([]*model.VectorEntry, error)

	// Delete removes an entry by ID
	Delete(ctx context.Context, id model.VectorEntryID) error

	// Rebuild clears the store as the full-rebuild signal
	Rebuild(ctx context.Context) error

	// Count returns the number of stored entries
	Count(ctx context.Context) (int, error)

	// FindNearest returns up to limit entries most similar to the given
	// embedding by cosine distance
	FindNearest(ctx context.Context, embedding []float32, limit int) ([]*model.VectorEntry, error)
}
