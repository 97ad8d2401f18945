package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"libridex/internal/core"
)

const defaultCohereBaseURL = "https://api.cohere.com"

// CohereEmbedder calls the Cohere embed endpoint. Default model is the
// multilingual v3 family (1024 dimensions).
type CohereEmbedder struct {
	apiKey    string
	model     string
	inputType string
	baseURL   string
	client    *http.Client
}

func NewCohereEmbedder(apiKey, model string) *CohereEmbedder {
	if model == "" {
		model = "embed-multilingual-v3.0"
	}
	return &CohereEmbedder{
		apiKey:    apiKey,
		model:     model,
		inputType: "search_document",
		baseURL:   defaultCohereBaseURL,
		client:    &http.Client{Timeout: 60 * time.Second},
	}
}

// ForQueries returns a copy that embeds with the search_query input type,
// for use by the retrieval side.
func (c *CohereEmbedder) ForQueries() *CohereEmbedder {
	q := *c
	q.inputType = "search_query"
	return &q
}

func (c *CohereEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	payload, err := json.Marshal(map[string]any{
		"model":      c.model,
		"texts":      []string{text},
		"input_type": c.inputType,
	})
	if err != nil {
		return nil, fmt.Errorf("cohere embed: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/embed", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("cohere embed: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cohere embed request failed: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("cohere embed error %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("cohere embed: decode response: %w", err)
	}
	if len(parsed.Embeddings) == 0 || len(parsed.Embeddings[0]) == 0 {
		return nil, fmt.Errorf("cohere embed: no embeddings returned")
	}
	return parsed.Embeddings[0], nil
}

var _ core.EmbeddingProvider = (*CohereEmbedder)(nil)
