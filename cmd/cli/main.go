package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/aztectemple/internal/client/cli"
	"github.com/dmitrijs2005/aztectemple/internal/client/config"
	"github.com/dmitrijs2005/aztectemple/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.LoadConfig()

	logger, err := logging.Setup(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "cannot start", "error", err)
		return 1
	}

	if err := app.Run(ctx); err != nil {
		return 1
	}
	return 0
}
