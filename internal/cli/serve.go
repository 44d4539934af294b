package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/cfrsync/internal/api"
	"github.com/example/cfrsync/internal/config"
	"github.com/example/cfrsync/internal/ports/primary"
	"github.com/example/cfrsync/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only HTTP API",
		Long: `Start an HTTP server exposing grouped correction summaries, the legacy
flat summary, store status, and Prometheus metrics. The server reads
from the store only; run ingest separately to refresh the data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			if addr != "" {
				cfg.Addr = addr
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			// Advisory integrity pass before serving reads. Drift is logged,
			// not fatal; the data may still be worth serving.
			reportDrift(cmd.Context(), logger, wire.VerifyService())

			handler := api.New(wire.CorrectionsService(), wire.StatusService(), logger, wire.Metrics())

			server := &http.Server{
				Addr:              cfg.Addr,
				Handler:           handler.Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("http server listening", "addr", cfg.Addr)
				errCh <- server.ListenAndServe()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server failed: %w", err)
				}
			case sig := <-stop:
				logger.Info("shutting down", "signal", sig.String())
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Shutdown(ctx); err != nil {
					return fmt.Errorf("shutdown failed: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides CFRSYNC_ADDR)")
	return cmd
}

// reportDrift recomputes agency checksums at startup and logs any drifted
// agencies as warnings.
func reportDrift(ctx context.Context, logger *slog.Logger, verify primary.VerifyService) {
	drifted, err := verify.VerifyChecksums(ctx)
	if err != nil {
		logger.Error("checksum verification failed", "error", err)
		return
	}
	if len(drifted) == 0 {
		logger.Info("agency checksums verified", "drifted", 0)
		return
	}
	logger.Warn("agency checksum drift detected", "drifted", len(drifted))
	for _, d := range drifted {
		logger.Warn("drifted agency", "id", d.ID, "short_name", d.ShortName, "name", d.Name)
	}
}
