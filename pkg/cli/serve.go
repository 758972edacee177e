package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/biaslens-dev/biaslens/pkg/cli/config"
	httpctrl "github.com/biaslens-dev/biaslens/pkg/controller/http"
	"github.com/biaslens-dev/biaslens/pkg/service/detector"
	"github.com/biaslens-dev/biaslens/pkg/service/worker"
	"github.com/biaslens-dev/biaslens/pkg/usecase"
	"github.com/biaslens-dev/biaslens/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var noAuth bool
	var analysisTimeout time.Duration
	var retention time.Duration
	var retentionInterval time.Duration
	var appCfg config.App
	var geminiCfg config.Gemini
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("BIASLENS_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and attribute all requests to the anonymous user (development only)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("BIASLENS_NO_AUTH"),
			Destination: &noAuth,
		},
		&cli.DurationFlag{
			Name:        "analysis-timeout",
			Usage:       "Timeout for a single LLM generation call",
			Value:       detector.DefaultTimeout,
			Sources:     cli.EnvVars("BIASLENS_ANALYSIS_TIMEOUT"),
			Destination: &analysisTimeout,
		},
		&cli.DurationFlag{
			Name:        "report-retention",
			Usage:       "Retention period for stored reports (0 disables the retention worker)",
			Sources:     cli.EnvVars("BIASLENS_REPORT_RETENTION"),
			Destination: &retention,
		},
		&cli.DurationFlag{
			Name:        "retention-interval",
			Usage:       "How often the retention worker prunes expired reports",
			Value:       worker.DefaultPruneInterval,
			Sources:     cli.EnvVars("BIASLENS_RETENTION_INTERVAL"),
			Destination: &retentionInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Load application configuration (prompt guidance)
			app, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			// Initialize LLM client and detection service
			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize LLM client")
			}

			detectorSvc, err := detector.New(llmClient,
				detector.WithTimeout(analysisTimeout),
				detector.WithGuidance(app.GuidanceText()),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize detector service")
			}

			// Configure authentication
			var authUC usecase.AuthUseCaseInterface
			if noAuth {
				logging.Default().Warn("Running in no-auth mode (development only)")
				authUC = usecase.NewNoAuthnUseCase()
			} else {
				authUC = usecase.NewAuthUseCase(repo)
			}

			uc := usecase.New(repo, detectorSvc, usecase.WithAuth(authUC))

			// Start report retention worker if retention is configured
			var retentionWorker *worker.ReportRetentionWorker
			if retention > 0 {
				retentionWorker = worker.NewReportRetentionWorker(repo, retention, retentionInterval)
				if err := retentionWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start report retention worker")
				}
			}

			// Create HTTP server
			httpHandler, err := httpctrl.New(uc, httpctrl.WithAuth(authUC))
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Stop retention worker first
				if retentionWorker != nil {
					retentionWorker.Stop()
				}

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
