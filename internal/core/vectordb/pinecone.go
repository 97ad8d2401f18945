// Package vectordb provides the vector database adapters: a Pinecone REST
// client and a Postgres/pgvector store behind the same interface.
package vectordb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"libridex/internal/core"
	"libridex/internal/models"
)

const defaultPineconeControlURL = "https://api.pinecone.io"

var _ core.VectorStore = (*PineconeStore)(nil)

// PineconeStore talks to Pinecone over its REST API: the control plane for
// index lifecycle, the per-index data plane for upserts and queries.
type PineconeStore struct {
	apiKey      string
	environment string
	controlURL  string
	client      *http.Client

	// bound by EnsureIndex
	dataURL   string
	dimension int
}

// NewPineconeStore builds an unbound store; EnsureIndex must be called
// before Upsert or Query. environment selects the pod environment used when
// the index has to be created.
func NewPineconeStore(apiKey, environment string) *PineconeStore {
	return &PineconeStore{
		apiKey:      apiKey,
		environment: environment,
		controlURL:  defaultPineconeControlURL,
		client:      &http.Client{Timeout: 60 * time.Second},
	}
}

type pineconeIndex struct {
	Name      string `json:"name"`
	Host      string `json:"host"`
	Dimension int    `json:"dimension"`
}

// EnsureIndex creates the index (cosine metric, declared indexed metadata
// fields) unless it is already listed, then resolves the data-plane host.
func (s *PineconeStore) EnsureIndex(ctx context.Context, name string, dimension int, indexedFields []string) error {
	var listed struct {
		Indexes []pineconeIndex `json:"indexes"`
	}
	if err := s.control(ctx, http.MethodGet, "/indexes", nil, &listed); err != nil {
		return fmt.Errorf("list indexes: %w", err)
	}
	for _, idx := range listed.Indexes {
		if idx.Name == name {
			s.bind(idx, dimension)
			return nil
		}
	}

	body := map[string]any{
		"name":      name,
		"dimension": dimension,
		"metric":    "cosine",
		"spec": map[string]any{
			"pod": map[string]any{
				"environment": s.environment,
				"pod_type":    "p1.x1",
				"metadata_config": map[string]any{
					"indexed": indexedFields,
				},
			},
		},
	}
	var created pineconeIndex
	if err := s.control(ctx, http.MethodPost, "/indexes", body, &created); err != nil {
		return fmt.Errorf("create index %s: %w", name, err)
	}
	s.bind(created, dimension)
	return nil
}

func (s *PineconeStore) bind(idx pineconeIndex, dimension int) {
	host := idx.Host
	if host != "" && !strings.Contains(host, "://") {
		host = "https://" + host
	}
	s.dataURL = host
	s.dimension = dimension
}

func (s *PineconeStore) Upsert(ctx context.Context, namespace string, records []models.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}
	if s.dataURL == "" {
		return fmt.Errorf("pinecone: no index bound, call EnsureIndex first")
	}
	vectors := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		if s.dimension > 0 && len(rec.Values) != s.dimension {
			return fmt.Errorf("pinecone: vector %s has dimension %d, index expects %d",
				rec.ID, len(rec.Values), s.dimension)
		}
		vectors = append(vectors, map[string]any{
			"id":       rec.ID,
			"values":   rec.Values,
			"metadata": rec.Metadata,
		})
	}
	body := map[string]any{
		"vectors":   vectors,
		"namespace": namespace,
	}
	var resp struct {
		UpsertedCount int `json:"upsertedCount"`
	}
	if err := s.data(ctx, "/vectors/upsert", body, &resp); err != nil {
		return fmt.Errorf("upsert %d vectors: %w", len(records), err)
	}
	return nil
}

func (s *PineconeStore) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]core.QueryMatch, error) {
	if s.dataURL == "" {
		return nil, fmt.Errorf("pinecone: no index bound, call EnsureIndex first")
	}
	if topK <= 0 {
		topK = 10
	}
	body := map[string]any{
		"namespace":       namespace,
		"vector":          vector,
		"topK":            topK,
		"includeMetadata": true,
	}
	var resp struct {
		Matches []struct {
			ID       string          `json:"id"`
			Score    float32         `json:"score"`
			Metadata models.Metadata `json:"metadata"`
		} `json:"matches"`
	}
	if err := s.data(ctx, "/query", body, &resp); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	out := make([]core.QueryMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		out = append(out, core.QueryMatch{ID: m.ID, Score: m.Score, Metadata: m.Metadata})
	}
	return out, nil
}

func (s *PineconeStore) Close() error { return nil }

func (s *PineconeStore) control(ctx context.Context, method, path string, body, out any) error {
	return s.do(ctx, method, s.controlURL+path, body, out)
}

func (s *PineconeStore) data(ctx context.Context, path string, body, out any) error {
	return s.do(ctx, http.MethodPost, s.dataURL+path, body, out)
}

func (s *PineconeStore) do(ctx context.Context, method, url string, body, out any) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Api-Key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("pinecone request failed: %w", err)
	}
	respBody, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("pinecone error %d: %s", resp.StatusCode, string(respBody))
	}
	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
