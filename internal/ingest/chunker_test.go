package ingest

import (
	"fmt"
	"strings"
	"testing"
)

func TestChunkWordsPartitions(t *testing.T) {
	words := make([]string, 0, 1250)
	for i := 0; i < 1250; i++ {
		words = append(words, fmt.Sprintf("w%d", i))
	}
	text := strings.Join(words, " ")

	chunks := ChunkWords(text, 500)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks for 1250 words at size 500, got %d", len(chunks))
	}
	for i, c := range chunks[:len(chunks)-1] {
		if n := len(strings.Fields(c)); n != 500 {
			t.Fatalf("chunk %d has %d words, want 500", i, n)
		}
	}
	if n := len(strings.Fields(chunks[len(chunks)-1])); n != 250 {
		t.Fatalf("last chunk has %d words, want 250", n)
	}

	// Concatenating all chunks must reproduce the original word sequence.
	if strings.Join(chunks, " ") != text {
		t.Fatal("chunks do not reproduce the original word sequence")
	}
}

func TestChunkWordsShortInput(t *testing.T) {
	chunks := ChunkWords("quick fox run", 500)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "quick fox run" {
		t.Fatalf("unexpected chunk: %q", chunks[0])
	}
}

func TestChunkWordsEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n \t"} {
		if chunks := ChunkWords(in, 500); len(chunks) != 0 {
			t.Fatalf("expected zero chunks for %q, got %d", in, len(chunks))
		}
	}
}

func TestChunkWordsNormalizesWhitespace(t *testing.T) {
	chunks := ChunkWords("a  b\tc\nd", 2)
	if len(chunks) != 2 || chunks[0] != "a b" || chunks[1] != "c d" {
		t.Fatalf("unexpected chunks: %#v", chunks)
	}
}
