package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
	"github.com/mnemo-lab/mnemo/pkg/repository/memory"
	"github.com/mnemo-lab/mnemo/pkg/usecase"
)

func TestSearchAfterCapture(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases(t, t.TempDir())
	projectID := types.ProjectID("mnemo")

	_, err := uc.Capture(ctx, projectID, conversationBatch())
	gt.NoError(t, err).Required()

	result, err := uc.Search(ctx, projectID, "postgres")
	gt.NoError(t, err).Required()
	gt.Value(t, result.Source).Equal(types.SearchSourceVector)
	gt.Number(t, len(result.Results)).GreaterOrEqual(1)
}

func TestSearchFileFallbackWithoutProvider(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	registry := model.NewProjectRegistry()
	registry.Register(&model.Project{ID: types.ProjectID("mnemo"), Name: "Mnemo", Root: root})

	// No embedding provider configured at all
	uc, err := usecase.New(registry, memory.New(), nil)
	gt.NoError(t, err).Required()

	_, err = uc.Capture(ctx, types.ProjectID("mnemo"), conversationBatch())
	gt.NoError(t, err).Required()

	result, err := uc.Search(ctx, types.ProjectID("mnemo"), "postgres")
	gt.NoError(t, err).Required()
	gt.Value(t, result.Source).Equal(types.SearchSourceFile)
	gt.Number(t, len(result.Results)).GreaterOrEqual(1)
}

func TestSearchMissingQuery(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases(t, t.TempDir())

	_, err := uc.Search(ctx, types.ProjectID("mnemo"), "   ")
	gt.Error(t, err).Is(usecase.ErrMissingQuery)
}

func TestSearchUnknownProject(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases(t, t.TempDir())

	_, err := uc.Search(ctx, types.ProjectID("nope"), "postgres")
	gt.Error(t, err).Is(model.ErrProjectNotFound)
}

func TestRebuildIndexAfterCapture(t *testing.T) {
	ctx := context.Background()
	uc, store := newTestUseCases(t, t.TempDir())
	projectID := types.ProjectID("mnemo")

	_, err := uc.Capture(ctx, projectID, conversationBatch())
	gt.NoError(t, err).Required()

	result, err := uc.RebuildIndex(ctx, projectID)
	gt.NoError(t, err).Required()
	gt.Value(t, result.Errors).Equal(0)
	gt.Number(t, result.Indexed).GreaterOrEqual(1)

	count, err := store.Count(ctx)
	gt.NoError(t, err)
	gt.Value(t, count).Equal(result.Indexed)
}
