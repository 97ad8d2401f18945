package llm

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"

	"libridex/internal/core"
)

// MockEmbedder produces deterministic unit-length vectors from the input
// text. Useful for tests and dry runs without a provider account.
type MockEmbedder struct {
	dim int
}

func NewMockEmbedder(dim int) *MockEmbedder {
	if dim <= 0 {
		dim = 1024
	}
	return &MockEmbedder{dim: dim}
}

func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	_ = ctx
	return deterministicVector(text, m.dim), nil
}

func deterministicVector(input string, dim int) []float32 {
	vec := make([]float32, dim)
	seed := []byte(input)
	if len(seed) == 0 {
		seed = []byte("empty")
	}
	for i := 0; i < dim; i++ {
		h := sha256.Sum256(append(seed, byte(i%251)))
		u := binary.BigEndian.Uint32(h[:4])
		vec[i] = float32(u%2000)/1000.0 - 1.0
	}
	return normalize(vec)
}

func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	inv := float32(1.0 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
	return v
}

var _ core.EmbeddingProvider = (*MockEmbedder)(nil)
