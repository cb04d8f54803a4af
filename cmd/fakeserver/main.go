// Command fakeserver serves the in-memory game API for local play without
// the real backend:
//
//	fakeserver -a 127.0.0.1:3001
//	aztec -a http://127.0.0.1:3001/api
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/aztectemple/internal/logging"
	"github.com/dmitrijs2005/aztectemple/internal/testserver"
)

func main() {
	addr := flag.String("a", "127.0.0.1:3001", "listen address")
	level := flag.String("l", "info", "log level")
	flag.Parse()

	logger, err := logging.Setup(logging.Options{Level: *level, Format: "json", Output: os.Stdout})
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	fake, err := testserver.New()
	if err != nil {
		logger.Error(context.Background(), "cannot start", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	initSignalHandler(cancel)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           fake.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info(ctx, "fake temple listening", "addr", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info(ctx, "fake temple stopped")
}

func initSignalHandler(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancel()
	}()
}
