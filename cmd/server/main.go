package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfrund/zippytrip/internal/app"
	"github.com/nfrund/zippytrip/internal/config"
	"github.com/nfrund/zippytrip/internal/logging"
	"github.com/nfrund/zippytrip/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.New()
	logging.New(cfg.GetLogFormat(), cfg.GetLogLevel())

	injector := app.NewInjector(cfg)
	defer app.Close(context.Background(), injector)

	deps, err := app.Resolve(injector)
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}

	return server.New(deps).Start(ctx, cfg.GetServerAddr())
}
