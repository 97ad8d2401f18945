package ingest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"libridex/internal/models"
)

// countingEmbedder returns a fixed vector and records how many calls it
// received.
type countingEmbedder struct {
	calls int
	fail  bool
}

func (e *countingEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	if e.fail {
		return nil, fmt.Errorf("embedding backend down")
	}
	return []float32{1, 2, 3}, nil
}

func TestBuildIdentifiersDeterministicAndUnique(t *testing.T) {
	emb := &countingEmbedder{}
	b := NewVectorBuilder(emb)
	chunks := []string{"alpha", "beta", "gamma"}

	first, err := b.Build(context.Background(), chunks, "doc", 4, nil)
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.Equal(t, 3, emb.calls, "one embedding call per chunk")

	seen := map[string]bool{}
	for i, rec := range first {
		require.Equal(t, fmt.Sprintf("doc_page_4_chunk_%d", i), rec.ID)
		require.False(t, seen[rec.ID], "duplicate id %s", rec.ID)
		seen[rec.ID] = true
	}

	second, err := b.Build(context.Background(), chunks, "doc", 4, nil)
	require.NoError(t, err)
	for i := range first {
		require.Equal(t, first[i].ID, second[i].ID, "ids must be stable across runs")
	}
}

func TestBuildMetadataMerge(t *testing.T) {
	b := NewVectorBuilder(&countingEmbedder{})
	runMeta := models.Metadata{
		"collection": "occult",
		"text":       "should not win", // reserved
	}
	records, err := b.Build(context.Background(), []string{"quick fox run"}, "doc", 0, runMeta)
	require.NoError(t, err)
	require.Len(t, records, 1)

	meta := records[0].Metadata
	require.Equal(t, "quick fox run", meta["text"], "injected text field wins over caller metadata")
	require.Equal(t, "doc", meta["file"])
	require.Equal(t, "0", meta["page"])
	require.Equal(t, "occult", meta["collection"])
}

func TestBuildEmbedFailurePropagates(t *testing.T) {
	b := NewVectorBuilder(&countingEmbedder{fail: true})
	_, err := b.Build(context.Background(), []string{"alpha"}, "doc", 0, nil)
	require.Error(t, err)
}

func TestBuildNoChunks(t *testing.T) {
	emb := &countingEmbedder{}
	b := NewVectorBuilder(emb)
	records, err := b.Build(context.Background(), nil, "doc", 0, nil)
	require.NoError(t, err)
	require.Empty(t, records)
	require.Zero(t, emb.calls)
}
