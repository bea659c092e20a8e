package interfaces

import (
	"context"

	"github.com/mnemo-lab/mnemo/pkg/domain/model"
)

// SemanticRecall answers a text query by similarity over the vector
// store. A failing or unconfigured recall provider is not an error
// condition for the search service; it falls back to a file scan.
type SemanticRecall interface {
	Recall(ctx context.Context, query string, limit int) ([]model.SearchHit, error)
}
