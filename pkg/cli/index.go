package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-lab/mnemo/pkg/cli/config"
	"github.com/mnemo-lab/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
	"github.com/mnemo-lab/mnemo/pkg/service/embedding"
	"github.com/mnemo-lab/mnemo/pkg/service/indexer"
	"github.com/mnemo-lab/mnemo/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdIndex() *cli.Command {
	var projectID string
	var rebuild bool
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Project ID to index",
			Required:    true,
			Sources:     cli.EnvVars("MNEMO_PROJECT"),
			Destination: &projectID,
		},
		&cli.BoolFlag{
			Name:        "rebuild",
			Usage:       "Clear the vector store and re-index from scratch",
			Destination: &rebuild,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "index",
		Aliases: []string{"i"},
		Usage:   "Index a project's memory artifacts into the vector store",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := appCfg.Load(); err != nil {
				return err
			}

			store, storeCloser, err := repoCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer storeCloser()

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return err
			}
			if llmClient == nil {
				return goerr.New("embedding provider is required for indexing, set --gemini-project")
			}
			var provider interfaces.EmbeddingProvider = embedding.New(llmClient)

			uc, err := usecase.New(appCfg.Registry(), store, provider)
			if err != nil {
				return err
			}

			progress := indexer.WithProgress(func(p model.IndexProgress) {
				color.New(color.FgHiBlack).Printf("\rindexed %d/%d", p.Indexed, p.Total)
			})

			var result *model.IndexResult
			if rebuild {
				result, err = uc.RebuildIndex(ctx, types.ProjectID(projectID), progress)
			} else {
				result, err = uc.IndexProject(ctx, types.ProjectID(projectID), progress)
			}
			if err != nil {
				return err
			}

			color.New(color.FgGreen).Printf("\nindexed: %d  skipped: %d  errors: %d\n",
				result.Indexed, result.Skipped, result.Errors)
			return nil
		},
	}
}
