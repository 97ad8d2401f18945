package retrieval

import (
	"context"
	"fmt"
	"testing"

	"libridex/internal/core"
	"libridex/internal/models"
)

type stubEmbedder struct {
	vec []float32
	err error
}

func (e *stubEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return e.vec, e.err
}

type stubStore struct {
	gotNamespace string
	gotVector    []float32
	gotTopK      int
	matches      []core.QueryMatch
	err          error
}

func (s *stubStore) EnsureIndex(ctx context.Context, name string, dimension int, indexedFields []string) error {
	return nil
}

func (s *stubStore) Upsert(ctx context.Context, namespace string, records []models.VectorRecord) error {
	return nil
}

func (s *stubStore) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]core.QueryMatch, error) {
	s.gotNamespace = namespace
	s.gotVector = vector
	s.gotTopK = topK
	return s.matches, s.err
}

func (s *stubStore) Close() error { return nil }

func TestSearchEmbedsAndQueries(t *testing.T) {
	store := &stubStore{matches: []core.QueryMatch{
		{ID: "tablet_page_2_chunk_0", Score: 0.91, Metadata: models.Metadata{"file": "tablet"}},
	}}
	s := NewSearcher(&stubEmbedder{vec: []float32{0.5, 0.5}}, store)

	matches, err := s.Search(context.Background(), "library", "as above so below", 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if store.gotNamespace != "library" || store.gotTopK != 3 {
		t.Fatalf("query got namespace %q topK %d", store.gotNamespace, store.gotTopK)
	}
	if len(store.gotVector) != 2 {
		t.Fatalf("query vector not forwarded: %v", store.gotVector)
	}
	if len(matches) != 1 || matches[0].ID != "tablet_page_2_chunk_0" {
		t.Fatalf("unexpected matches: %#v", matches)
	}
}

func TestSearchEmbedFailure(t *testing.T) {
	store := &stubStore{}
	s := NewSearcher(&stubEmbedder{err: fmt.Errorf("provider down")}, store)

	if _, err := s.Search(context.Background(), "library", "query", 3); err == nil {
		t.Fatal("expected an error when embedding fails")
	}
	if store.gotNamespace != "" {
		t.Fatal("store must not be queried when embedding fails")
	}
}

func TestSearchStoreFailure(t *testing.T) {
	store := &stubStore{err: fmt.Errorf("index unavailable")}
	s := NewSearcher(&stubEmbedder{vec: []float32{1}}, store)

	if _, err := s.Search(context.Background(), "library", "query", 3); err == nil {
		t.Fatal("expected an error when the store query fails")
	}
}
