package usecase

import (
	"github.com/mnemo-lab/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/model/config"
	"github.com/mnemo-lab/mnemo/pkg/service/capture"
	"github.com/mnemo-lab/mnemo/pkg/service/classify"
	"github.com/mnemo-lab/mnemo/pkg/service/guard"
	"github.com/mnemo-lab/mnemo/pkg/service/indexer"
	"github.com/mnemo-lab/mnemo/pkg/service/recall"
	"github.com/mnemo-lab/mnemo/pkg/service/search"
	"github.com/mnemo-lab/mnemo/pkg/service/segment"
)

// UseCases wires the capture and retrieval pipeline behind a single
// boundary: guard, segmentation, classification, artifact writing,
// indexing and search.
type UseCases struct {
	registry *model.ProjectRegistry

	segmentConfig  *config.SegmentConfig
	classifyConfig *config.ClassifyConfig
	guardConfig    *config.GuardConfig

	guard      *guard.Guard
	chunker    *segment.Chunker
	classifier *classify.Classifier
	writer     *capture.Writer
	indexer    *indexer.Indexer
	search     *search.Service
}

type Option func(*UseCases)

// WithSegmentConfig overrides the segmentation heuristics
func WithSegmentConfig(cfg *config.SegmentConfig) Option {
	return func(uc *UseCases) {
		uc.segmentConfig = cfg
	}
}

// WithClassifyConfig overrides the classifier keyword tables
func WithClassifyConfig(cfg *config.ClassifyConfig) Option {
	return func(uc *UseCases) {
		uc.classifyConfig = cfg
	}
}

// WithGuardConfig overrides the capture guard limits
func WithGuardConfig(cfg *config.GuardConfig) Option {
	return func(uc *UseCases) {
		uc.guardConfig = cfg
	}
}

// New creates the use case layer over a vector store and an embedding
// provider. A nil provider disables semantic recall; capture still
// works and search degrades to the file scan.
func New(registry *model.ProjectRegistry, store interfaces.VectorStore, provider interfaces.EmbeddingProvider, opts ...Option) (*UseCases, error) {
	uc := &UseCases{
		registry: registry,
	}

	for _, opt := range opts {
		opt(uc)
	}

	g, err := guard.New(uc.guardConfig)
	if err != nil {
		return nil, err
	}
	uc.guard = g
	uc.chunker = segment.NewChunker(uc.segmentConfig)
	uc.classifier = classify.New(uc.classifyConfig)
	uc.writer = capture.NewWriter()
	uc.indexer = indexer.New(store, provider)

	var recallSvc interfaces.SemanticRecall
	if provider != nil {
		recallSvc = recall.New(store, provider)
	}
	uc.search = search.New(recallSvc)

	return uc, nil
}

// Projects lists the registered projects in registration order
func (uc *UseCases) Projects() []*model.Project {
	return uc.registry.List()
}
