package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/pkg/observability"

	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("service stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	instruments, shutdownTelemetry, err := observability.Init(ctx, observability.Config{
		ServiceName: configs.OtelServiceName,
		Exporter:    configs.OtelExporter,
		LogLevel:    configs.LogLevel,
	})
	if err != nil {
		return err
	}
	logger := instruments.Logger

	storage, err := cmd.OpenStorage(ctx, configs)
	if err != nil {
		return err
	}

	app := cmd.NewCompositionRoot(configs, instruments, storage)

	e, err := app.NewEcho(ctx)
	if err != nil {
		return err
	}
	e.Logger.SetLevel(echoLogLevel(configs.LogLevel))

	jobManager := app.NewJobManager()
	if err := jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "port", configs.HTTPPort, "storage", configs.StorageDriver)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serverErr:
		if err != nil {
			logger.Error("http server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErr error
	if err := e.Shutdown(shutdownCtx); err != nil {
		shutdownErr = errors.Join(shutdownErr, fmt.Errorf("stop http server: %w", err))
	}
	jobManager.StopAll()
	if err := app.Close(shutdownCtx); err != nil {
		shutdownErr = errors.Join(shutdownErr, err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		shutdownErr = errors.Join(shutdownErr, fmt.Errorf("stop telemetry: %w", err))
	}
	return shutdownErr
}

// echoLogLevel maps LOG_LEVEL onto echo's own logger.
func echoLogLevel(level string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
