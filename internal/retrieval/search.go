// Package retrieval answers semantic queries against an already populated
// index.
package retrieval

import (
	"context"
	"fmt"

	"libridex/internal/core"
)

// Searcher embeds a query string and runs a namespaced top-k similarity
// search through the vector store.
type Searcher struct {
	embedder core.EmbeddingProvider
	store    core.VectorStore
}

func NewSearcher(embedder core.EmbeddingProvider, store core.VectorStore) *Searcher {
	return &Searcher{embedder: embedder, store: store}
}

func (s *Searcher) Search(ctx context.Context, namespace, query string, topK int) ([]core.QueryMatch, error) {
	vec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	matches, err := s.store.Query(ctx, namespace, vec, topK)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	return matches, nil
}
