package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/park285/weather-assistant-go/internal/config"
	"github.com/park285/weather-assistant-go/internal/di"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := di.InitializeApp(ctx)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	config.LogEnvStatus(app.Config, app.Logger)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		app.Logger.Info(
			"http_server_start",
			"addr", app.Server.Addr,
			"http2", app.Config.HTTP.HTTP2Enabled,
		)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if app.GRPCServer != nil {
		group.Go(func() error {
			app.Logger.Info("grpc_server_start", "addr", app.GRPCServer.Listener.Addr().String())
			return app.GRPCServer.Serve()
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		app.Logger.Info("server_shutdown_signal", "cause", context.Cause(groupCtx))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			app.Logger.Error("http_server_shutdown_failed", "err", err)
			_ = app.Server.Close()
		}
		app.Close(shutdownCtx)
		return nil
	})

	if err := group.Wait(); err != nil {
		app.Logger.Error("server_failed", "err", err)
		os.Exit(1)
	}
}
