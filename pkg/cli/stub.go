package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	server "github.com/classroom-tools/attendctl/pkg/controller/http"
	"github.com/classroom-tools/attendctl/pkg/repository/memory"
	"github.com/classroom-tools/attendctl/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdStub(a *app) *cli.Command {
	var (
		addr      string
		seed      bool
		traceback bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Category:    "Stub",
			Value:       "127.0.0.1:5000",
			Destination: &addr,
			Sources:     cli.EnvVars("ATTENDCTL_STUB_ADDR"),
		},
		&cli.BoolFlag{
			Name:        "seed",
			Usage:       "Provision a demo workspace with an answered attendance thread",
			Category:    "Stub",
			Value:       true,
			Destination: &seed,
		},
		&cli.BoolFlag{
			Name:        "traceback",
			Usage:       "Include a traceback field in 500 responses",
			Category:    "Stub",
			Value:       true,
			Destination: &traceback,
		},
	}

	return &cli.Command{
		Name:  "stub",
		Usage: "Serve an in-memory attendance backend for development",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			store := memory.New()
			if seed {
				if err := store.Seed(ctx); err != nil {
					return goerr.Wrap(err, "failed to seed stub backend")
				}
			}

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server.New(store, server.WithTraceback(traceback)),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting stub backend", "addr", addr, "seed", seed)
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logging.Default().Info("Context cancelled")
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
