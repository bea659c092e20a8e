// Package search answers text queries with a multi-tier strategy:
// semantic recall over the vector store when available, with a silent
// fallback to a plain-text scan of the markdown artifacts.
package search

import (
	"context"

	"github.com/mnemo-lab/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
	"github.com/mnemo-lab/mnemo/pkg/utils/logging"
)

const defaultMaxResults = 10

// Service is the search entry point
type Service struct {
	recall     interfaces.SemanticRecall
	maxResults int
}

// Option configures the search service
type Option func(*Service)

// WithMaxResults overrides the result limit
func WithMaxResults(n int) Option {
	return func(s *Service) {
		s.maxResults = n
	}
}

// New creates a search service. A nil recall provider means every
// query goes straight to the file scan.
func New(recall interfaces.SemanticRecall, opts ...Option) *Service {
	s := &Service{
		recall:     recall,
		maxResults: defaultMaxResults,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search answers a query for the project rooted at root. Recall
// failures are not surfaced; they degrade to the file scan. Empty
// results are a valid response, not an error.
func (s *Service) Search(ctx context.Context, root, query string) (*model.SearchResult, error) {
	if s.recall != nil {
		hits, err := s.recall.Recall(ctx, query, s.maxResults)
		if err == nil {
			return &model.SearchResult{
				Results: hits,
				Source:  types.SearchSourceVector,
			}, nil
		}
		logging.From(ctx).Debug("semantic recall unavailable, falling back to file scan",
			"error", err.Error())
	}

	hits, err := scanFiles(root, query, s.maxResults)
	if err != nil {
		return nil, err
	}

	return &model.SearchResult{
		Results: hits,
		Source:  types.SearchSourceFile,
	}, nil
}
