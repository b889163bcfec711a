package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/cli/config"
	controller "github.com/secmon-lab/rsvp/pkg/controller/http"
	"github.com/secmon-lab/rsvp/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		backendCfg   config.Backend
		slackCfg     config.Slack
		firestoreCfg config.Firestore
		throttleCfg  config.Throttle
	)

	flags := joinFlags(
		serverCfg.Flags(),
		backendCfg.Flags(),
		slackCfg.Flags(),
		firestoreCfg.Flags(),
		throttleCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting rsvp server",
				slog.Any("server", serverCfg),
				slog.Any("backend", backendCfg),
				slog.Any("slack", slackCfg),
				slog.Any("firestore", firestoreCfg),
				slog.Any("throttle", throttleCfg),
			)

			client, err := backendCfg.Configure()
			if err != nil {
				return err
			}

			repo, err := firestoreCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			limiter, err := throttleCfg.Configure()
			if err != nil {
				return err
			}

			notifier := slackCfg.ConfigureOptional(ctx)

			rsvpOpts := []usecase.RSVPOption{usecase.WithThrottle(limiter)}
			var manageOpts []usecase.ManageOption
			if notifier != nil {
				rsvpOpts = append(rsvpOpts, usecase.WithNotifier(notifier))
				manageOpts = append(manageOpts, usecase.WithManageNotifier(notifier))
			}

			rsvpUC, err := usecase.NewRSVP(client, repo, rsvpOpts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create rsvp use case")
			}
			manageUC, err := usecase.NewManage(client, repo, manageOpts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create manage use case")
			}

			server, err := controller.NewServer(ctx, serverCfg.Addr, controller.NewUseCases(rsvpUC, manageUC))
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
