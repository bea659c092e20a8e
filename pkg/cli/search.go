package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-lab/mnemo/pkg/cli/config"
	"github.com/mnemo-lab/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
	"github.com/mnemo-lab/mnemo/pkg/service/embedding"
	"github.com/mnemo-lab/mnemo/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdSearch() *cli.Command {
	var projectID string
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Project ID to search",
			Required:    true,
			Sources:     cli.EnvVars("MNEMO_PROJECT"),
			Destination: &projectID,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:      "search",
		Usage:     "Search a project's memory",
		ArgsUsage: "<query>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			query := c.Args().First()
			if query == "" {
				return goerr.New("query argument is required")
			}

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
			var provider interfaces.EmbeddingProvider
			if llmClient != nil {
				provider = embedding.New(llmClient)
			}

			uc, err := usecase.New(appCfg.Registry(), store, provider)
			if err != nil {
				return err
			}

			result, err := uc.Search(ctx, types.ProjectID(projectID), query)
			if err != nil {
				return err
			}

			color.New(color.FgHiBlack).Printf("source: %s, %d results\n\n",
				result.Source, len(result.Results))
			for i, hit := range result.Results {
				color.New(color.FgCyan, color.Bold).Printf("%d. [%s] score %.3f\n",
					i+1, hit.Type, hit.Score)
				fmt.Println(hit.Text)
				fmt.Println()
			}
			return nil
		},
	}
}
