// Command export pre-renders the post index and every post page to static HTML.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"inkwell/internal/app"
	"inkwell/internal/config"
	"inkwell/internal/exporter"
	"inkwell/internal/logger"
	"inkwell/web"
)

func main() {
	out := flag.String("out", "dist", "directory to write the pages to")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logs := logger.New()

	ctx := context.Background()
	a, err := app.New(ctx, cfg, logs)
	if err != nil {
		logs.Error("start: %v", err)
		os.Exit(1)
	}
	defer a.Close()

	n, err := exporter.Export(ctx, a.Loader, a.Engine, web.FS, *out, logs)
	if err != nil {
		logs.Error("export: %v", err)
		os.Exit(1)
	}
	logs.Info("Exported %d pages to %s", n, *out)
}
