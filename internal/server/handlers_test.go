package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"embedpipe/internal/embedding"
	"embedpipe/internal/engine"
	"embedpipe/internal/store"
)

type echoProvider struct{}

func (echoProvider) EmbedDocuments(ctx context.Context, docs []string) ([][]float64, error) {
	out := make([][]float64, len(docs))
	for i, doc := range docs {
		out[i] = []float64{float64(len(doc))}
	}
	return out, nil
}

func setupTestServer(t *testing.T) *Server {
	st, err := store.Open(path.Join(t.TempDir(), "models.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	registry := embedding.NewRegistry()
	err = registry.Register(embedding.Spec{
		Identifier: "EchoEmbeddings",
		Fields:     []string{"batch_size"},
		New: func(fields map[string]any) (embedding.Provider, error) {
			return echoProvider{}, nil
		},
	}, "Echo")
	require.NoError(t, err)

	return New(st, registry, engine.Options{DefaultBatchSize: 32})
}

func doJSON(t *testing.T, s *Server, method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, url, &buf)
	s.router.ServeHTTP(w, r)
	return w
}

func createEchoModel(t *testing.T, s *Server) {
	w := doJSON(t, s, http.MethodPost, "/v1/models", CreateModelRequest{
		Name:   "test_model",
		Target: "embeddings",
		Using:  map[string]any{"class": "echo"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestHandleHealthCheck(t *testing.T) {
	s := setupTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleCreateModel(t *testing.T) {
	s := setupTestServer(t)
	createEchoModel(t, s)

	// unknown backend is rejected with a client error
	w := doJSON(t, s, http.MethodPost, "/v1/models", CreateModelRequest{
		Name:  "bad_model",
		Using: map[string]any{"class": "NoSuchBackend"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// missing name is rejected by binding
	w = doJSON(t, s, http.MethodPost, "/v1/models", map[string]any{"target": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePredict(t *testing.T) {
	s := setupTestServer(t)
	createEchoModel(t, s)

	w := doJSON(t, s, http.MethodPost, "/v1/models/test_model/predict", PredictRequest{
		Columns: []string{"a", "b"},
		Rows:    [][]any{{1, "x"}, {2, "y"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"a", "b", "embeddings"}, resp.Columns)
	require.Len(t, resp.Rows, 2)

	doc := "a: 1\nb: x"
	assert.Equal(t, []any{float64(len(doc))}, resp.Rows[0][2])
}

func TestHandlePredictUnknownModel(t *testing.T) {
	s := setupTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/v1/models/nope/predict", PredictRequest{
		Columns: []string{"a"},
		Rows:    [][]any{{1}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlePredictMissingColumns(t *testing.T) {
	s := setupTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/v1/models", CreateModelRequest{
		Name:  "test_model",
		Using: map[string]any{"class": "echo", "input_columns": []string{"a", "b"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, s, http.MethodPost, "/v1/models/test_model/predict", PredictRequest{
		Columns: []string{"a"},
		Rows:    [][]any{{1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "b")
}

func TestHandleDescribe(t *testing.T) {
	s := setupTestServer(t)
	createEchoModel(t, s)

	w := doJSON(t, s, http.MethodGet, "/v1/models/test_model/describe?attribute=metadata", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "EchoEmbeddings")

	w = doJSON(t, s, http.MethodGet, "/v1/models/test_model/describe", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tables")
}

func TestHandleFinetune(t *testing.T) {
	s := setupTestServer(t)
	createEchoModel(t, s)

	w := doJSON(t, s, http.MethodPost, fmt.Sprintf("/v1/models/%s/finetune", "test_model"), nil)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}
