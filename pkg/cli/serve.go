package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/reneeyyx/Safety1st/pkg/cli/config"
	httpctrl "github.com/reneeyyx/Safety1st/pkg/controller/http"
	"github.com/reneeyyx/Safety1st/pkg/engine"
	"github.com/reneeyyx/Safety1st/pkg/service/narrative"
	"github.com/reneeyyx/Safety1st/pkg/service/worker"
	"github.com/reneeyyx/Safety1st/pkg/usecase"
	"github.com/reneeyyx/Safety1st/pkg/utils/logging"
	"github.com/reneeyyx/Safety1st/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var maxNarrativeAdjust float64
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var calCfg config.Calibration
	var researchCfg config.Research
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("SAFETY1ST_ADDR"),
			Destination: &addr,
		},
		&cli.FloatFlag{
			Name:        "max-narrative-adjust",
			Usage:       "Maximum points the narrative analysis may move the baseline risk score",
			Value:       usecase.DefaultMaxNarrativeAdjust,
			Sources:     cli.EnvVars("SAFETY1ST_MAX_NARRATIVE_ADJUST"),
			Destination: &maxNarrativeAdjust,
		},
	}

	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, calCfg.Flags()...)
	flags = append(flags, researchCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			flush, err := sentryCfg.Configure(c.Root().Version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure error reporting")
			}
			defer flush()

			// Load the calibration table and build the risk engine
			cal, err := calCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load calibration")
			}
			calculator, err := engine.New(cal)
			if err != nil {
				return goerr.Wrap(err, "failed to build risk engine")
			}
			logging.Default().Info("Calibration loaded", "set", cal.Set)

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			ucOpts := []usecase.Option{
				usecase.WithMaxNarrativeAdjust(maxNarrativeAdjust),
			}

			// Initialize research service if enabled
			researchSvc := researchCfg.Configure()
			if researchSvc != nil {
				ucOpts = append(ucOpts, usecase.WithResearch(researchSvc))
				logging.Default().Info("Research gathering enabled")
			} else {
				logging.Default().Info("Research gathering disabled, analysis will run without research context")
			}

			// Initialize narrative service if a Gemini project is configured
			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient != nil {
				narrativeSvc, err := narrative.New(llmClient)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize narrative service")
				}
				ucOpts = append(ucOpts, usecase.WithNarrative(narrativeSvc))
				logging.Default().Info("Narrative analysis enabled")
			} else {
				logging.Default().Info("Gemini project not configured, narrative analysis disabled")
			}

			uc := usecase.New(repo, calculator, ucOpts...)

			// Start the research refresh worker to keep the page cache warm
			var refreshWorker *worker.ResearchRefreshWorker
			if researchSvc != nil && researchCfg.RefreshInterval() > 0 {
				refreshWorker = worker.NewResearchRefreshWorker(researchSvc, researchCfg.RefreshInterval())
				if err := refreshWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start research refresh worker")
				}
			}

			httpOpts := []httpctrl.Options{
				httpctrl.WithAnalysis(llmClient != nil),
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if refreshWorker != nil {
					refreshWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
