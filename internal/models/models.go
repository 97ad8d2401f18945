package models

// Metadata is the set of string key/value pairs attached to every vector of a
// run. The keys "text", "file" and "page" are reserved for the per-chunk
// fields injected by the vector builder.
type Metadata map[string]string

// Clone returns a shallow copy so callers can merge without mutating the
// run-level map.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// VectorRecord is one upsertable entry of the vector index.
type VectorRecord struct {
	ID       string    `json:"id"`
	Values   []float32 `json:"values"`
	Metadata Metadata  `json:"metadata"`
}

// PageStatus describes what happened to a single page during processing.
type PageStatus string

const (
	PageIndexed      PageStatus = "indexed"
	PageSkippedEmpty PageStatus = "skipped_empty"
)

// PageOutcome records the result for one zero-indexed page.
type PageOutcome struct {
	Page   int
	Status PageStatus
	Chunks int
}

// FileReport is the per-file result returned by the document processor. A
// non-nil Err means processing stopped at some page; earlier pages may still
// have been indexed and uploaded.
type FileReport struct {
	Path    string
	File    string
	Pages   []PageOutcome
	Vectors int
	Uploads int
	Err     error
}

// Failed reports whether processing of this file ended in an error.
func (r FileReport) Failed() bool { return r.Err != nil }

// RunReport aggregates the outcome of one ingestion run over a source.
type RunReport struct {
	RunID string
	Files []FileReport
}

// Totals sums processed, failed, vector and upsert counts across all files.
func (r *RunReport) Totals() (processed, failed, vectors, uploads int) {
	for _, f := range r.Files {
		if f.Failed() {
			failed++
			continue
		}
		processed++
		vectors += f.Vectors
		uploads += f.Uploads
	}
	return processed, failed, vectors, uploads
}
