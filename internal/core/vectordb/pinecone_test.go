package vectordb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"libridex/internal/models"
)

// newTestStore wires a PineconeStore against in-process control and data
// plane servers.
func newTestStore(t *testing.T, control, data http.Handler) (*PineconeStore, *httptest.Server) {
	t.Helper()
	dataSrv := httptest.NewServer(data)
	t.Cleanup(dataSrv.Close)

	mux := http.NewServeMux()
	mux.Handle("/", withHost(control, dataSrv.URL))
	controlSrv := httptest.NewServer(mux)
	t.Cleanup(controlSrv.Close)

	s := NewPineconeStore("test-key", "us-east-1")
	s.controlURL = controlSrv.URL
	return s, dataSrv
}

// withHost lets control handlers know the data plane URL to hand back.
func withHost(h http.Handler, host string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Header.Set("X-Test-Host", host)
		h.ServeHTTP(w, r)
	})
}

func TestEnsureIndexReusesExisting(t *testing.T) {
	createCalls := 0
	control := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.Header.Get("Api-Key"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/indexes":
			json.NewEncoder(w).Encode(map[string]any{
				"indexes": []map[string]any{
					{"name": "library-index", "host": r.Header.Get("X-Test-Host"), "dimension": 1024},
				},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/indexes":
			createCalls++
			w.WriteHeader(http.StatusCreated)
		default:
			http.NotFound(w, r)
		}
	})
	s, _ := newTestStore(t, control, http.NotFoundHandler())

	err := s.EnsureIndex(context.Background(), "library-index", 1024, []string{"file", "page"})
	require.NoError(t, err)
	require.Zero(t, createCalls, "existing index must be reused, not re-created")
	require.NotEmpty(t, s.dataURL)
}

func TestEnsureIndexCreatesWhenAbsent(t *testing.T) {
	var created map[string]any
	control := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/indexes":
			json.NewEncoder(w).Encode(map[string]any{"indexes": []map[string]any{}})
		case r.Method == http.MethodPost && r.URL.Path == "/indexes":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{
				"name": created["name"], "host": r.Header.Get("X-Test-Host"),
			})
		default:
			http.NotFound(w, r)
		}
	})
	s, _ := newTestStore(t, control, http.NotFoundHandler())

	err := s.EnsureIndex(context.Background(), "library-index", 1024, []string{"file", "page", "tradition"})
	require.NoError(t, err)
	require.Equal(t, "library-index", created["name"])
	require.Equal(t, float64(1024), created["dimension"])
	require.Equal(t, "cosine", created["metric"])

	spec := created["spec"].(map[string]any)["pod"].(map[string]any)
	require.Equal(t, "us-east-1", spec["environment"])
	metaCfg := spec["metadata_config"].(map[string]any)
	require.ElementsMatch(t, []any{"file", "page", "tradition"}, metaCfg["indexed"])
}

func TestUpsertSendsNamespacedVectors(t *testing.T) {
	var got map[string]any
	data := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/vectors/upsert", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"upsertedCount": 2})
	})
	control := listOnlyControl("library-index")
	s, _ := newTestStore(t, control, data)
	require.NoError(t, s.EnsureIndex(context.Background(), "library-index", 2, nil))

	records := []models.VectorRecord{
		{ID: "doc_page_0_chunk_0", Values: []float32{1, 2}, Metadata: models.Metadata{"file": "doc"}},
		{ID: "doc_page_0_chunk_1", Values: []float32{3, 4}, Metadata: models.Metadata{"file": "doc"}},
	}
	require.NoError(t, s.Upsert(context.Background(), "library", records))

	require.Equal(t, "library", got["namespace"])
	vectors := got["vectors"].([]any)
	require.Len(t, vectors, 2)
	first := vectors[0].(map[string]any)
	require.Equal(t, "doc_page_0_chunk_0", first["id"])
}

func TestUpsertRejectsWrongDimension(t *testing.T) {
	s, _ := newTestStore(t, listOnlyControl("library-index"), http.NotFoundHandler())
	require.NoError(t, s.EnsureIndex(context.Background(), "library-index", 3, nil))

	err := s.Upsert(context.Background(), "ns", []models.VectorRecord{
		{ID: "bad", Values: []float32{1, 2}},
	})
	require.ErrorContains(t, err, "dimension")
}

func TestQueryParsesMatches(t *testing.T) {
	data := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/query", r.URL.Path)
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, true, req["includeMetadata"])
		require.Equal(t, "library", req["namespace"])
		json.NewEncoder(w).Encode(map[string]any{
			"matches": []map[string]any{
				{"id": "doc_page_0_chunk_0", "score": 0.93, "metadata": map[string]string{"file": "doc"}},
			},
		})
	})
	s, _ := newTestStore(t, listOnlyControl("library-index"), data)
	require.NoError(t, s.EnsureIndex(context.Background(), "library-index", 2, nil))

	matches, err := s.Query(context.Background(), "library", []float32{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "doc_page_0_chunk_0", matches[0].ID)
	require.Equal(t, "doc", matches[0].Metadata["file"])
}

func TestUpsertWithoutIndexFails(t *testing.T) {
	s := NewPineconeStore("k", "env")
	err := s.Upsert(context.Background(), "ns", []models.VectorRecord{{ID: "x", Values: []float32{1}}})
	require.ErrorContains(t, err, "EnsureIndex")
}

// listOnlyControl always reports the named index as existing.
func listOnlyControl(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/indexes" {
			json.NewEncoder(w).Encode(map[string]any{
				"indexes": []map[string]any{{"name": name, "host": r.Header.Get("X-Test-Host")}},
			})
			return
		}
		http.NotFound(w, r)
	})
}
