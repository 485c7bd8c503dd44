package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"cansee/internal/config"
	"cansee/internal/core"
	apphttp "cansee/internal/http"
	applog "cansee/internal/log"
	"cansee/internal/view"
	appweb "cansee/web"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		// Logging is not configured yet.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, _ := applog.ParseLevel(cfg.LogLevel)
	logger := applog.New(applog.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: applog.ComponentApp,
		Output:    os.Stdout,
	})
	applog.SetDefault(logger)

	reg := core.DefaultRegistry()
	for _, w := range reg.Check() {
		logger.WithComponent(applog.ComponentDataset).Warn("Dataset integrity warning", applog.FieldWarning, w)
	}

	renderer, err := view.NewRenderer(reg, appweb.Templates())
	if err != nil {
		logger.Error("Failed to load templates", applog.FieldError, err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(cfg, renderer, logger)
	if err := srv.Warm(context.Background()); err != nil {
		logger.Error("Failed to render dashboard", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	logger.Info("Starting cansee dashboard", "port", cfg.Port, "log_format", cfg.LogFormat)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
