package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cansee/internal/core"
	"cansee/internal/export"
	applog "cansee/internal/log"
	"cansee/internal/view"
	appweb "cansee/web"
)

func main() {
	out := flag.String("out", "dist", "output directory")
	level := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	lvl, err := applog.ParseLevel(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := applog.New(applog.Config{Level: lvl, Component: applog.ComponentExport, Output: os.Stderr})
	applog.SetDefault(logger)

	reg := core.DefaultRegistry()
	for _, w := range reg.Check() {
		logger.Warn("Dataset integrity warning", applog.FieldWarning, w)
	}

	renderer, err := view.NewRenderer(reg, appweb.Templates())
	if err != nil {
		logger.Error("Failed to load templates", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	paths, err := export.New(reg, renderer, appweb.Static(), logger).Write(ctx, *out)
	if err != nil {
		logger.Error("Export failed", applog.FieldError, err, "dir", *out)
		os.Exit(1)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}
