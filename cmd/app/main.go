package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"parcels/cmd"
	"parcels/internal/pkg/logger"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		return err
	}

	appLog := logger.New(logger.Options{
		ServiceName: configs.App.ServiceName,
		Level:       logger.ParseLevel(configs.App.LogLevel),
		Format:      configs.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := cmd.OpenDatabase(ctx, configs.DB, configs.App.IsDev())
	if err != nil {
		return err
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		defer sqlDB.Close()
	}

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, appLog)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			appLog.Warn(context.Background(), "closing adapters", closeErr)
		}
	}()

	server, err := app.CreateServer()
	if err != nil {
		return err
	}
	// Requests are logged through zerolog; echo's own logger only reports startup failures.
	server.Echo().Logger.SetLevel(log.ERROR)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		address := fmt.Sprintf("0.0.0.0:%s", configs.App.Port)
		appLog.Info(appLog.WithField(gCtx, "address", address), "http server started")
		if err := server.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		appLog.Info(context.Background(), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.App.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
