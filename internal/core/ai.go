package core

import (
	"context"
	"image"
)

// EmbeddingProvider turns a single text into a fixed-dimension vector. The
// pipeline issues one call per chunk.
type EmbeddingProvider interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// OCREngine extracts text from a rendered page image. The result may be
// empty when the engine finds nothing legible.
type OCREngine interface {
	ImageToText(img image.Image) (string, error)
	Close() error
}

// Normalizer reduces raw page text to a single line of space-joined,
// lowercased lemmas with stopwords and punctuation removed. Empty input
// yields empty output.
type Normalizer interface {
	Normalize(text string) (string, error)
}
