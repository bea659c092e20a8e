// Package memory provides an in-memory vector store for development
// and tests.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-lab/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
)

// ErrNotFound is returned when an entry does not exist in the store
var ErrNotFound = goerr.New("entry not found")

// VectorStore is an in-memory implementation of interfaces.VectorStore
type VectorStore struct {
	mu      sync.RWMutex
	entries map[model.VectorEntryID]*model.VectorEntry
}

var _ interfaces.VectorStore = &VectorStore{}

// New creates an empty in-memory vector store
func New() *VectorStore {
	return &VectorStore{
		entries: make(map[model.VectorEntryID]*model.VectorEntry),
	}
}

func copyEntry(e *model.VectorEntry) *model.VectorEntry {
	copied := &model.VectorEntry{
		ID:         e.ID,
		Text:       e.Text,
		Type:       e.Type,
		SourceFile: e.SourceFile,
		Workspace:  e.Workspace,
		Timestamp:  e.Timestamp,
		Permanent:  e.Permanent,
	}
	if e.Embedding != nil {
		copied.Embedding = make([]float32, len(e.Embedding))
		copy(copied.Embedding, e.Embedding)
	}
	return copied
}

func (s *VectorStore) Insert(ctx context.Context, entry *model.VectorEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		return goerr.New("entry ID is required")
	}

	s.entries[entry.ID] = copyEntry(entry)
	return nil
}

func (s *VectorStore) GetAll(ctx context.Context) ([]*model.VectorEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.VectorEntry, 0, len(s.entries))
	for _, e := range s.entries {
		result = append(result, copyEntry(e))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].SourceFile < result[j].SourceFile
	})

	return result, nil
}

func (s *VectorStore) Delete(ctx context.Context, id model.VectorEntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[id]; !exists {
		return goerr.Wrap(ErrNotFound, "entry not found", goerr.V("id", id))
	}

	delete(s.entries, id)
	return nil
}

func (s *VectorStore) Rebuild(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[model.VectorEntryID]*model.VectorEntry)
	return nil
}

func (s *VectorStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries), nil
}

func (s *VectorStore) FindNearest(ctx context.Context, embedding []float32, limit int) ([]*model.VectorEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		entry *model.VectorEntry
		score float64
	}

	var candidates []scored
	for _, e := range s.entries {
		if len(e.Embedding) == 0 {
			continue
		}
		candidates = append(candidates, scored{
			entry: copyEntry(e),
			score: cosineSimilarity(embedding, e.Embedding),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit > len(candidates) {
		limit = len(candidates)
	}

	result := make([]*model.VectorEntry, limit)
	for i := 0; i < limit; i++ {
		result[i] = candidates[i].entry
	}

	return result, nil
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
