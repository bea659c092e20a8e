package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
	"github.com/mnemo-lab/mnemo/pkg/repository/memory"
	"github.com/mnemo-lab/mnemo/pkg/service/embedding/mock"
	"github.com/mnemo-lab/mnemo/pkg/usecase"
)

func newTestUseCases(t *testing.T, root string) (*usecase.UseCases, *memory.VectorStore) {
	t.Helper()
	registry := model.NewProjectRegistry()
	registry.Register(&model.Project{
		ID:   types.ProjectID("mnemo"),
		Name: "Mnemo",
		Root: root,
	})

	store := memory.New()
	uc, err := usecase.New(registry, store, mock.New())
	gt.NoError(t, err).Required()
	return uc, store
}

func conversationBatch() []*model.Exchange {
	return []*model.Exchange{
		{
			User:      "Should we use Postgres or SQLite for the backend?",
			Assistant: "Postgres fits better for concurrent writers.",
			Timestamp: 1700000000000,
		},
		{
			User:      "Let's use Postgres then. Any schema concerns?",
			Assistant: "Keep migrations small and reversible.",
			Timestamp: 1700000060000,
		},
	}
}

func TestCaptureWritesArtifacts(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	uc, store := newTestUseCases(t, root)

	result, err := uc.Capture(ctx, types.ProjectID("mnemo"), conversationBatch())
	gt.NoError(t, err).Required()
	gt.Value(t, result.Captured).Equal(2)
	gt.Bool(t, result.Deduplicated).False()

	entries, err := os.ReadDir(filepath.Join(root, "memory", "conversations"))
	gt.NoError(t, err).Required()
	gt.Number(t, len(entries)).GreaterOrEqual(1)

	// "Let's use Postgres" is a team decision, so a detail artifact exists
	decisions, err := os.ReadDir(filepath.Join(root, "memory", "decisions"))
	gt.NoError(t, err).Required()
	gt.Number(t, len(decisions)).GreaterOrEqual(1)

	// Chunks are indexed as part of capture
	count, err := store.Count(ctx)
	gt.NoError(t, err)
	gt.Number(t, count).GreaterOrEqual(1)
}

func TestCaptureIdempotent(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases(t, t.TempDir())
	batch := conversationBatch()

	first, err := uc.Capture(ctx, types.ProjectID("mnemo"), batch)
	gt.NoError(t, err).Required()
	gt.Value(t, first.Captured).Equal(2)

	second, err := uc.Capture(ctx, types.ProjectID("mnemo"), batch)
	gt.NoError(t, err).Required()
	gt.Value(t, second.Captured).Equal(0)
	gt.Bool(t, second.Deduplicated).True()
}

func TestCaptureUnknownProject(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases(t, t.TempDir())

	_, err := uc.Capture(ctx, types.ProjectID("nope"), conversationBatch())
	gt.Error(t, err).Is(model.ErrProjectNotFound)
}

func TestCaptureInvalidPayload(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases(t, t.TempDir())

	_, err := uc.Capture(ctx, types.ProjectID("mnemo"), nil)
	gt.Error(t, err).Is(usecase.ErrInvalidPayload)
}

func TestCaptureSurvivesEmbeddingOutage(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	registry := model.NewProjectRegistry()
	registry.Register(&model.Project{ID: types.ProjectID("mnemo"), Name: "Mnemo", Root: root})

	embedder := mock.New()
	embedder.Fail = true
	uc, err := usecase.New(registry, memory.New(), embedder)
	gt.NoError(t, err).Required()

	// The artifact still lands on disk even when indexing is down
	result, err := uc.Capture(ctx, types.ProjectID("mnemo"), conversationBatch())
	gt.NoError(t, err).Required()
	gt.Value(t, result.Captured).Equal(2)

	entries, err := os.ReadDir(filepath.Join(root, "memory", "conversations"))
	gt.NoError(t, err).Required()
	gt.Number(t, len(entries)).GreaterOrEqual(1)
}

func TestCaptureMultibyteConversation(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	uc, store := newTestUseCases(t, root)

	batch := []*model.Exchange{
		{
			User:      strings.Repeat("é", 100) + " comment gérer la mémoire partagée",
			Assistant: "On garde un cache borné côté serveur.",
			Timestamp: 1700000000000,
		},
	}

	result, err := uc.Capture(ctx, types.ProjectID("mnemo"), batch)
	gt.NoError(t, err).Required()
	gt.Value(t, result.Captured).Equal(1)

	// Accented content must survive the write/index round trip
	count, err := store.Count(ctx)
	gt.NoError(t, err)
	gt.Number(t, count).GreaterOrEqual(1)
}
