package ingest

import (
	"context"
	"fmt"

	"libridex/internal/core"
	"libridex/internal/models"
)

// DefaultBatchSize is the number of records per upsert call.
const DefaultBatchSize = 100

// BatchUploader partitions records into contiguous batches and issues one
// upsert call per batch, in order. A failing batch aborts the upload.
type BatchUploader struct {
	store     core.VectorStore
	batchSize int
}

func NewBatchUploader(store core.VectorStore, batchSize int) *BatchUploader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BatchUploader{store: store, batchSize: batchSize}
}

// Upload returns the number of upsert calls issued.
func (u *BatchUploader) Upload(ctx context.Context, namespace string, records []models.VectorRecord) (int, error) {
	calls := 0
	for i := 0; i < len(records); i += u.batchSize {
		end := i + u.batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := u.store.Upsert(ctx, namespace, records[i:end]); err != nil {
			return calls, fmt.Errorf("upsert batch starting at %d: %w", i, err)
		}
		calls++
	}
	return calls, nil
}
