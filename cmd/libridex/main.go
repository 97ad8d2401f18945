package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"libridex/internal/app"
	"libridex/internal/config"
	"libridex/internal/models"
)

// Run parameters. Keys, index name and tuning knobs come from the
// environment; what to ingest and how to tag it is declared here.
var (
	pdfDirectory = "./data/pdfs"
	runNamespace = "library"
	runMetadata  = models.Metadata{
		"collection": "research-library",
		"language":   "en",
	}
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		<-c
		cancel()
	}()

	cfg := config.LoadConfig()
	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer application.Close()

	src, err := app.NewSource(ctx, cfg, pdfDirectory)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	if _, err := application.Driver.Run(ctx, src, runNamespace, runMetadata); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}
