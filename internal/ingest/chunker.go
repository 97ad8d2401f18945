package ingest

import "strings"

// DefaultChunkSize is the number of words per chunk.
const DefaultChunkSize = 500

// ChunkWords splits normalized text into contiguous, non-overlapping windows
// of chunkSize whitespace-delimited words; the last window may be shorter.
// Empty input yields zero chunks.
func ChunkWords(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	chunks := make([]string, 0, (len(words)+chunkSize-1)/chunkSize)
	for i := 0; i < len(words); i += chunkSize {
		end := i + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
