package usecase

import (
	"context"

	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
	"github.com/mnemo-lab/mnemo/pkg/service/indexer"
)

// IndexProject indexes every artifact beneath the project's memory
// directory, skipping unchanged files.
func (uc *UseCases) IndexProject(ctx context.Context, projectID types.ProjectID, opts ...indexer.Option) (*model.IndexResult, error) {
	project, err := uc.registry.Get(projectID)
	if err != nil {
		return nil, err
	}
	return uc.indexer.IndexAll(ctx, project.Root, opts...)
}

// RebuildIndex clears the vector store and re-indexes the project from
// scratch
func (uc *UseCases) RebuildIndex(ctx context.Context, projectID types.ProjectID, opts ...indexer.Option) (*model.IndexResult, error) {
	project, err := uc.registry.Get(projectID)
	if err != nil {
		return nil, err
	}
	return uc.indexer.Rebuild(ctx, project.Root, opts...)
}
