package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shakaihoken/premium-calculator/internal/api"
	"github.com/shakaihoken/premium-calculator/internal/calculation"
	"github.com/shakaihoken/premium-calculator/internal/config"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *globalOptions) *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Long: `Serve the calculator as a JSON API. Settings come from the environment
(APP_PORT, APP_ENV, LOG_LEVEL, CORS_ALLOWED_ORIGINS, REFERENCE_TABLES), optionally
loaded from a .env file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverCfg, err := config.LoadServerConfig(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				serverCfg.LogLevel = opts.logLevel
			}

			ref, err := opts.loadReference(serverCfg.ReferencePath)
			if err != nil {
				return err
			}
			logger := api.NewLogger(os.Stdout, serverCfg)
			engine := calculation.NewCalculationEngine(ref)
			engine.SetLogger(calculation.NewSlogLogger(logger))

			srv := &http.Server{
				Addr:              serverCfg.Addr(),
				Handler:           api.NewRouter(serverCfg, logger, api.NewPremiumHandler(engine)),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info(fmt.Sprintf("server running at http://localhost%s", serverCfg.Addr()))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			logger.Info("shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load when present")
	return cmd
}
