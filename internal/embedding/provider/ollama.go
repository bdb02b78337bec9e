package provider

import (
	"context"
	"fmt"
	"strings"

	"embedpipe/internal/embedding"
	"embedpipe/pkg/utils"
)

const (
	ollamaBaseURL = "http://localhost:11434"
	ollamaModel   = "nomic-embed-text"
)

type ollamaRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type ollamaResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

// OllamaProvider calls a local Ollama server.
type OllamaProvider struct {
	apiURL string
	model  string
}

func newOllamaProvider(fields map[string]any) (embedding.Provider, error) {
	baseURL := utils.StringField(fields, "base_url", ollamaBaseURL)
	return &OllamaProvider{
		apiURL: strings.TrimSuffix(baseURL, "/") + "/api/embed",
		model:  utils.StringField(fields, "model", ollamaModel),
	}, nil
}

func (e *OllamaProvider) EmbedDocuments(ctx context.Context, docs []string) ([][]float64, error) {
	req := &ollamaRequest{
		Model: e.model,
		Input: docs,
	}

	var resp ollamaResponse
	if err := postJSON(ctx, e.apiURL, "", req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Embeddings) != len(docs) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(docs), len(resp.Embeddings))
	}
	return resp.Embeddings, nil
}
