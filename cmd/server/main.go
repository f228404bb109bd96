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

	"inkwell/internal/app"
	"inkwell/internal/config"
	"inkwell/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logs := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logs)
	if err != nil {
		logs.Error("start: %v", err)
		os.Exit(1)
	}
	defer a.Close()

	// Pre-render every known post before accepting traffic.
	built, err := a.Loader.Prebuild(ctx)
	if err != nil {
		logs.Error("prebuild failed after %d posts: %v", built, err)
		os.Exit(1)
	}
	logs.Info("Pre-rendered %d posts", built)

	a.Loader.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logs.Info("Inkwell server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logs.Error("listen: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logs.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logs.Error("shutdown: %v", err)
	}
	a.Loader.Wait()
}
