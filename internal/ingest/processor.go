// Package ingest drives the sequential pipeline: extract, normalize, chunk,
// embed, upload, one page at a time and one file at a time.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"libridex/internal/core"
	"libridex/internal/core/extract"
	"libridex/internal/models"
)

// Processor handles one document at a time. All dependencies are injected;
// the processor itself holds no external state.
type Processor struct {
	reader     core.DocumentReader
	extractor  *extract.Extractor
	normalizer core.Normalizer
	builder    *VectorBuilder
	uploader   *BatchUploader
	chunkSize  int
}

func NewProcessor(
	reader core.DocumentReader,
	extractor *extract.Extractor,
	normalizer core.Normalizer,
	builder *VectorBuilder,
	uploader *BatchUploader,
	chunkSize int,
) *Processor {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Processor{
		reader:     reader,
		extractor:  extractor,
		normalizer: normalizer,
		builder:    builder,
		uploader:   uploader,
		chunkSize:  chunkSize,
	}
}

// ProcessDocument runs one file through the pipeline and always returns a
// report instead of propagating errors: a failed file must not stop the
// rest of the run. A failure after some pages were uploaded leaves those
// pages in the index; the report says where processing stopped.
func (p *Processor) ProcessDocument(ctx context.Context, source core.Source, path, namespace string, runMeta models.Metadata) models.FileReport {
	report := models.FileReport{
		Path: path,
		File: fileStem(path),
	}

	doc, err := source.OpenDocument(ctx, p.reader, path)
	if err != nil {
		if errors.Is(err, core.ErrFileData) {
			log.Printf("ERROR: failed to open file %s: %v", path, err)
		} else {
			log.Printf("ERROR: error processing file %s: %v", path, err)
		}
		report.Err = err
		return report
	}
	defer doc.Close()

	for page := 0; page < doc.NumPages(); page++ {
		pageText := p.extractor.PageText(doc, page)
		if strings.TrimSpace(pageText) == "" {
			log.Printf("WARN: no text extracted from page %d of %s", page, path)
			report.Pages = append(report.Pages, models.PageOutcome{Page: page, Status: models.PageSkippedEmpty})
			continue
		}

		normalized, err := p.normalizer.Normalize(pageText)
		if err != nil {
			report.Err = fmt.Errorf("normalize page %d: %w", page, err)
			log.Printf("ERROR: error processing file %s: %v", path, report.Err)
			return report
		}
		chunks := ChunkWords(normalized, p.chunkSize)
		records, err := p.builder.Build(ctx, chunks, report.File, page, runMeta)
		if err != nil {
			report.Err = fmt.Errorf("vectorize page %d: %w", page, err)
			log.Printf("ERROR: error processing file %s: %v", path, report.Err)
			return report
		}
		calls, err := p.uploader.Upload(ctx, namespace, records)
		report.Uploads += calls
		if err != nil {
			report.Err = fmt.Errorf("upload page %d: %w", page, err)
			log.Printf("ERROR: error processing file %s: %v", path, report.Err)
			return report
		}
		report.Vectors += len(records)
		report.Pages = append(report.Pages, models.PageOutcome{
			Page:   page,
			Status: models.PageIndexed,
			Chunks: len(chunks),
		})
	}

	log.Printf("successfully processed %s", path)
	return report
}

// fileStem derives the document name from a path or object key: base name
// without the extension.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
