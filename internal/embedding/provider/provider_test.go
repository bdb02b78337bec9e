package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"embedpipe/internal/embedding"
)

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)
	assert.Equal(t, len(firstParty)+len(catalog), r.Len())

	// friendly aliases resolve in both cases
	for _, name := range []string{"VLLM", "vllm", "FastAPI", "fastapi", "OpenAI", "openai", "Gemini", "Ollama", "huggingface"} {
		spec, err := r.Resolve(name)
		assert.NoError(t, err, name)
		assert.NotEmpty(t, spec.Identifier)
	}

	// canonical identifiers resolve to themselves
	spec, err := r.Resolve("OpenAIEmbeddings")
	require.NoError(t, err)
	assert.Equal(t, "OpenAIEmbeddings", spec.Identifier)
}

func TestOpenAIProviderRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := newOpenAIProvider(map[string]any{})
	assert.Error(t, err)

	p, err := newOpenAIProvider(map[string]any{"api_key": "sk-test", "batch_size": 16})
	require.NoError(t, err)
	assert.Equal(t, 16, p.(embedding.BatchSizer).BatchSize())
}

func TestVLLMProviderRequiresBaseURL(t *testing.T) {
	_, err := newVLLMProvider(map[string]any{})
	assert.Error(t, err)
}

func TestFastAPIProviderRequiresBaseURL(t *testing.T) {
	_, err := newFastAPIProvider(map[string]any{})
	assert.Error(t, err)
}

func TestVLLMEmbedDocuments(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := openAIResponse{}
		for i := range req.Input {
			resp.Data = append(resp.Data, struct {
				Embedding []float64 `json:"embedding"`
			}{Embedding: []float64{float64(i)}})
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer ts.Close()

	p, err := newVLLMProvider(map[string]any{"base_url": ts.URL, "model": "test-model"})
	require.NoError(t, err)

	vectors, err := p.EmbedDocuments(context.Background(), []string{"one", "two"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0}, {1}}, vectors)
}

func TestFastAPIEmbedDocuments(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req fastAPIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := fastAPIResponse{Embeddings: make([][]float64, len(req.Texts))}
		for i := range req.Texts {
			resp.Embeddings[i] = []float64{float64(len(req.Texts[i]))}
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer ts.Close()

	p, err := newFastAPIProvider(map[string]any{"base_url": ts.URL, "api_key": "secret"})
	require.NoError(t, err)

	vectors, err := p.EmbedDocuments(context.Background(), []string{"a", "bb"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1}, {2}}, vectors)
}

func TestFastAPIEmbedDocumentsLengthMismatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(fastAPIResponse{Embeddings: [][]float64{{1}}})
	}))
	defer ts.Close()

	p, err := newFastAPIProvider(map[string]any{"base_url": ts.URL})
	require.NoError(t, err)

	_, err = p.EmbedDocuments(context.Background(), []string{"a", "b"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 embeddings")
}

func TestOpenAIEmbedDocumentsErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid api key"}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	p, err := newOpenAIProvider(map[string]any{"api_key": "sk-bad", "base_url": ts.URL})
	require.NoError(t, err)

	_, err = p.EmbedDocuments(context.Background(), []string{"a"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestOllamaEmbedDocuments(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embed", r.URL.Path)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)

		resp := ollamaResponse{Embeddings: make([][]float64, len(req.Input))}
		for i := range req.Input {
			resp.Embeddings[i] = []float64{1, 2}
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer ts.Close()

	p, err := newOllamaProvider(map[string]any{"base_url": ts.URL})
	require.NoError(t, err)

	vectors, err := p.EmbedDocuments(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}}, vectors)
}
