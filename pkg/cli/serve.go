package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-lab/mnemo/pkg/cli/config"
	httpctrl "github.com/mnemo-lab/mnemo/pkg/controller/http"
	"github.com/mnemo-lab/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-lab/mnemo/pkg/service/embedding"
	"github.com/mnemo-lab/mnemo/pkg/usecase"
	"github.com/mnemo-lab/mnemo/pkg/utils/async"
	"github.com/mnemo-lab/mnemo/pkg/utils/errutil"
	"github.com/mnemo-lab/mnemo/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("MNEMO_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the capture and search HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

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
			} else {
				logger.Warn("embedding provider not configured, search will use file scan only")
			}

			uc, err := usecase.New(appCfg.Registry(), store, provider,
				usecase.WithSegmentConfig(appCfg.SegmentConfig()),
				usecase.WithGuardConfig(appCfg.GuardConfig()),
			)
			if err != nil {
				return err
			}

			// Warm the vector store in the background so search is
			// useful right after startup
			if provider != nil {
				for _, p := range uc.Projects() {
					projectID := p.ID
					async.Dispatch(ctx, func(ctx context.Context) error {
						result, err := uc.IndexProject(ctx, projectID)
						if err != nil {
							errutil.Handle(ctx, err, "startup indexing failed")
							return nil
						}
						logging.From(ctx).Info("startup indexing finished",
							"project_id", projectID,
							"indexed", result.Indexed,
							"skipped", result.Skipped,
							"errors", result.Errors)
						return nil
					})
				}
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server", "addr", addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "HTTP server failed")
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("Shutting down", "signal", sig.String())
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shut down HTTP server")
			}

			return nil
		},
	}
}
