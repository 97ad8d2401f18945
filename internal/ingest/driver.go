package ingest

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"

	"libridex/internal/core"
	"libridex/internal/models"
)

// Driver ensures the target index exists, then feeds every PDF of a source
// through the processor, strictly sequentially, and aggregates a run
// report. One file's failure never aborts the run.
type Driver struct {
	store     core.VectorStore
	processor *Processor
	indexName string
	dimension int
}

func NewDriver(store core.VectorStore, processor *Processor, indexName string, dimension int) *Driver {
	return &Driver{
		store:     store,
		processor: processor,
		indexName: indexName,
		dimension: dimension,
	}
}

// Run returns an error only for run-level failures (index setup, source
// listing); per-file failures are carried in the report.
func (d *Driver) Run(ctx context.Context, source core.Source, namespace string, runMeta models.Metadata) (*models.RunReport, error) {
	if err := d.store.EnsureIndex(ctx, d.indexName, d.dimension, indexedFields(runMeta)); err != nil {
		return nil, fmt.Errorf("ensure index %s: %w", d.indexName, err)
	}

	paths, err := source.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	report := &models.RunReport{RunID: uuid.NewString()}
	for _, path := range paths {
		log.Printf("processing: %s", path)
		report.Files = append(report.Files, d.processor.ProcessDocument(ctx, source, path, namespace, runMeta))
	}

	processed, failed, vectors, uploads := report.Totals()
	log.Printf("run %s complete: %d files processed, %d failed, %d vectors in %d upserts",
		report.RunID, processed, failed, vectors, uploads)
	for _, f := range report.Files {
		if f.Failed() {
			log.Printf("ERROR: %s: %v", f.Path, f.Err)
		}
	}
	return report, nil
}

// indexedFields declares which metadata fields the index should make
// filterable: the injected file and page fields plus the run metadata keys,
// sorted for a deterministic create request.
func indexedFields(runMeta models.Metadata) []string {
	fields := []string{"file", "page"}
	for k := range runMeta {
		if !reservedMetadataKeys[k] {
			fields = append(fields, k)
		}
	}
	sort.Strings(fields)
	return fields
}
