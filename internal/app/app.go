// Package app wires the configured adapters into the ingestion pipeline.
package app

import (
	"context"
	"fmt"
	"io"
	"log"

	"libridex/internal/config"
	"libridex/internal/core"
	"libridex/internal/core/extract"
	"libridex/internal/core/llm"
	"libridex/internal/core/nlp"
	"libridex/internal/core/ocr"
	"libridex/internal/core/pdf"
	"libridex/internal/core/vectordb"
	"libridex/internal/ingest"
	"libridex/internal/retrieval"
)

type App struct {
	Store    core.VectorStore
	Embedder core.EmbeddingProvider
	Driver   *ingest.Driver
	Searcher *retrieval.Searcher

	closers []io.Closer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	embedder, err := newEmbedder(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the embedder: %w", err)
	}
	a.Embedder = embedder
	if c, ok := embedder.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("couldn't initialize the vector store: %w", err)
	}
	a.Store = store
	a.closers = append(a.closers, store)
	log.Printf("vector store %q ready", cfg.VectorStore)

	ocrEngine, err := ocr.NewTesseract(cfg.TessdataPrefix, cfg.OCRLanguages)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("couldn't initialize tesseract: %w", err)
	}
	a.closers = append(a.closers, ocrEngine)

	normalizer, err := nlp.NewNormalizer()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("couldn't initialize the normalizer: %w", err)
	}

	processor := ingest.NewProcessor(
		pdf.NewReader(),
		extract.New(ocrEngine),
		normalizer,
		ingest.NewVectorBuilder(embedder),
		ingest.NewBatchUploader(store, cfg.BatchSize),
		cfg.ChunkSize,
	)
	a.Driver = ingest.NewDriver(store, processor, cfg.IndexName, cfg.EmbedDim)
	a.Searcher = retrieval.NewSearcher(embedder, store)

	return a, nil
}

func newEmbedder(ctx context.Context, cfg *config.Config) (core.EmbeddingProvider, error) {
	switch cfg.EmbedProvider {
	case "gemini":
		return llm.NewGeminiEmbedder(ctx, cfg.GeminiAPIKey, cfg.EmbedModel)
	case "cohere":
		return llm.NewCohereEmbedder(cfg.CohereAPIKey, cfg.EmbedModel), nil
	case "mock":
		return llm.NewMockEmbedder(cfg.EmbedDim), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.EmbedProvider)
	}
}

func newStore(ctx context.Context, cfg *config.Config) (core.VectorStore, error) {
	switch cfg.VectorStore {
	case "pinecone":
		return vectordb.NewPineconeStore(cfg.PineconeAPIKey, cfg.PineconeEnvironment), nil
	case "pgvector":
		return vectordb.NewPgvectorStore(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown vector store %q", cfg.VectorStore)
	}
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}
