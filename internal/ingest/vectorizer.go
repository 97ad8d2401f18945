package ingest

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"libridex/internal/core"
	"libridex/internal/models"
)

// reservedMetadataKeys are injected per chunk and always win over
// run-level metadata of the same name.
var reservedMetadataKeys = map[string]bool{
	"text": true,
	"file": true,
	"page": true,
}

// VectorBuilder turns a page's chunks into upsertable records, one
// embedding call per chunk.
type VectorBuilder struct {
	embedder core.EmbeddingProvider
}

func NewVectorBuilder(embedder core.EmbeddingProvider) *VectorBuilder {
	return &VectorBuilder{embedder: embedder}
}

// Build produces one record per chunk with the deterministic identifier
// {file}_page_{page}_chunk_{i}, so re-processing the same page overwrites
// instead of duplicating.
func (b *VectorBuilder) Build(ctx context.Context, chunks []string, file string, page int, runMeta models.Metadata) ([]models.VectorRecord, error) {
	records := make([]models.VectorRecord, 0, len(chunks))
	for i, chunk := range chunks {
		values, err := b.embedder.EmbedText(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d of %s page %d: %w", i, file, page, err)
		}
		meta := models.Metadata{
			"text": chunk,
			"file": file,
			"page": strconv.Itoa(page),
		}
		for k, v := range runMeta {
			if reservedMetadataKeys[k] {
				log.Printf("WARN: run metadata key %q is reserved, dropping caller value", k)
				continue
			}
			meta[k] = v
		}
		records = append(records, models.VectorRecord{
			ID:       fmt.Sprintf("%s_page_%d_chunk_%d", file, page, i),
			Values:   values,
			Metadata: meta,
		})
	}
	return records, nil
}
