package core

import (
	"context"

	"libridex/internal/models"
)

// QueryMatch is one scored result of a similarity query.
type QueryMatch struct {
	ID       string
	Score    float32
	Metadata models.Metadata
}

// VectorStore abstracts the external vector database. Implementations bind
// to one index after EnsureIndex and partition writes and reads by
// namespace. Upserting an existing id overwrites the prior vector.
type VectorStore interface {
	// EnsureIndex creates the named index with the given dimension, cosine
	// similarity and declared indexed metadata fields if it does not already
	// exist; an existing index is reused as-is without schema validation.
	EnsureIndex(ctx context.Context, name string, dimension int, indexedFields []string) error
	Upsert(ctx context.Context, namespace string, records []models.VectorRecord) error
	Query(ctx context.Context, namespace string, vector []float32, topK int) ([]QueryMatch, error)
	Close() error
}

// Source enumerates the PDF documents of one ingestion run and knows how to
// open them through a DocumentReader (local files by path, remote objects by
// fetched bytes).
type Source interface {
	// ListDocuments returns paths or keys of PDF files in sorted order.
	ListDocuments(ctx context.Context) ([]string, error)
	OpenDocument(ctx context.Context, reader DocumentReader, path string) (Document, error)
}
