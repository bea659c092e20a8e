package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
)

// Search answers a query against the project's memory. The vector tier
// is preferred; file scan failures are the only fatal path.
func (uc *UseCases) Search(ctx context.Context, projectID types.ProjectID, query string) (*model.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, goerr.Wrap(ErrMissingQuery, "query must not be empty",
			goerr.V("project_id", projectID))
	}

	project, err := uc.registry.Get(projectID)
	if err != nil {
		return nil, err
	}

	return uc.search.Search(ctx, project.Root, query)
}
